package glapi

// Enum values as defined by the OpenGL registry. Only what the wrappers use is listed.
const (
	FALSE = 0
	TRUE  = 1
	NONE  = 0

	// Errors
	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	STACK_OVERFLOW                = 0x0503
	STACK_UNDERFLOW               = 0x0504
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	// Strings
	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	SHADING_LANGUAGE_VERSION = 0x8B8C

	// Buffer targets
	ARRAY_BUFFER              = 0x8892
	ELEMENT_ARRAY_BUFFER      = 0x8893
	PIXEL_PACK_BUFFER         = 0x88EB
	PIXEL_UNPACK_BUFFER       = 0x88EC
	UNIFORM_BUFFER            = 0x8A11
	TEXTURE_BUFFER            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	DRAW_INDIRECT_BUFFER      = 0x8F3F

	// Vertex arrays
	VERTEX_ARRAY_BINDING = 0x85B5
	MAX_VERTEX_ATTRIBS   = 0x8869

	// Buffer usage
	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STREAM_COPY  = 0x88E2
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	STATIC_COPY  = 0x88E6
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	BUFFER_SIZE = 0x8764

	// Map access bits
	MAP_READ_BIT              = 0x0001
	MAP_WRITE_BIT             = 0x0002
	MAP_INVALIDATE_RANGE_BIT  = 0x0004
	MAP_INVALIDATE_BUFFER_BIT = 0x0008
	MAP_FLUSH_EXPLICIT_BIT    = 0x0010
	MAP_UNSYNCHRONIZED_BIT    = 0x0020

	// Data types
	BYTE              = 0x1400
	UNSIGNED_BYTE     = 0x1401
	SHORT             = 0x1402
	UNSIGNED_SHORT    = 0x1403
	INT               = 0x1404
	UNSIGNED_INT      = 0x1405
	FLOAT             = 0x1406
	HALF_FLOAT        = 0x140B
	UNSIGNED_INT_24_8 = 0x84FA

	FLOAT_VEC2        = 0x8B50
	FLOAT_VEC3        = 0x8B51
	FLOAT_VEC4        = 0x8B52
	INT_VEC2          = 0x8B53
	INT_VEC3          = 0x8B54
	INT_VEC4          = 0x8B55
	BOOL              = 0x8B56
	FLOAT_MAT2        = 0x8B5A
	FLOAT_MAT3        = 0x8B5B
	FLOAT_MAT4        = 0x8B5C
	SAMPLER_2D        = 0x8B5E
	SAMPLER_3D        = 0x8B5F
	SAMPLER_CUBE      = 0x8B60
	UNSIGNED_INT_VEC2 = 0x8DC6
	UNSIGNED_INT_VEC3 = 0x8DC7
	UNSIGNED_INT_VEC4 = 0x8DC8

	// Shaders and programs
	FRAGMENT_SHADER        = 0x8B30
	VERTEX_SHADER          = 0x8B31
	GEOMETRY_SHADER        = 0x8DD9
	TESS_EVALUATION_SHADER = 0x8E87
	TESS_CONTROL_SHADER    = 0x8E88

	COMPILE_STATUS    = 0x8B81
	LINK_STATUS       = 0x8B82
	VALIDATE_STATUS   = 0x8B83
	INFO_LOG_LENGTH   = 0x8B84
	ATTACHED_SHADERS  = 0x8B85
	ACTIVE_UNIFORMS   = 0x8B86
	ACTIVE_ATTRIBUTES = 0x8B89

	ACTIVE_UNIFORM_BLOCKS         = 0x8A36
	UNIFORM_BLOCK_INDEX           = 0x8A3A
	UNIFORM_OFFSET                = 0x8A3B
	UNIFORM_BLOCK_BINDING         = 0x8A3F
	UNIFORM_BLOCK_DATA_SIZE       = 0x8A40
	UNIFORM_BLOCK_NAME_LENGTH     = 0x8A41
	UNIFORM_BLOCK_ACTIVE_UNIFORMS = 0x8A42

	INVALID_INDEX = 0xFFFFFFFF

	// Textures
	TEXTURE_1D             = 0x0DE0
	TEXTURE_2D             = 0x0DE1
	TEXTURE_3D             = 0x806F
	TEXTURE_RECTANGLE      = 0x84F5
	TEXTURE_CUBE_MAP       = 0x8513
	TEXTURE_2D_ARRAY       = 0x8C1A
	TEXTURE_CUBE_MAP_ARRAY = 0x9009
	TEXTURE_2D_MULTISAMPLE = 0x9100

	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515

	TEXTURE0 = 0x84C0

	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	TEXTURE_WRAP_R     = 0x8072
	TEXTURE_BASE_LEVEL = 0x813C
	TEXTURE_MAX_LEVEL  = 0x813D

	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	REPEAT          = 0x2901
	CLAMP_TO_BORDER = 0x812D
	CLAMP_TO_EDGE   = 0x812F
	MIRRORED_REPEAT = 0x8370

	// Pixel formats
	DEPTH_COMPONENT = 0x1902
	RED             = 0x1903
	RGB             = 0x1907
	RGBA            = 0x1908
	RG              = 0x8227
	DEPTH_STENCIL   = 0x84F9
	RED_INTEGER     = 0x8D94

	// Internal formats
	RGB8               = 0x8051
	RGBA8              = 0x8058
	DEPTH_COMPONENT24  = 0x81A6
	R8                 = 0x8229
	RG8                = 0x822B
	R32F               = 0x822E
	RG32F              = 0x8230
	R32I               = 0x8235
	R32UI              = 0x8236
	RGBA32F            = 0x8814
	RGB32F             = 0x8815
	RGBA16F            = 0x881A
	DEPTH24_STENCIL8   = 0x88F0
	SRGB8              = 0x8C41
	SRGB_ALPHA         = 0x8C42
	SRGB8_ALPHA8       = 0x8C43
	DEPTH_COMPONENT32F = 0x8CAC

	// Framebuffers
	FRAMEBUFFER              = 0x8D40
	READ_FRAMEBUFFER         = 0x8CA8
	DRAW_FRAMEBUFFER         = 0x8CA9
	RENDERBUFFER             = 0x8D41
	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	STENCIL_ATTACHMENT       = 0x8D20
	DEPTH_STENCIL_ATTACHMENT = 0x821A
	MAX_COLOR_ATTACHMENTS    = 0x8CDF

	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8
	FRAMEBUFFER_UNDEFINED                     = 0x8219

	COLOR_BUFFER_BIT   = 0x4000
	DEPTH_BUFFER_BIT   = 0x0100
	STENCIL_BUFFER_BIT = 0x0400

	// Queries
	SAMPLES_PASSED                        = 0x8914
	ANY_SAMPLES_PASSED                    = 0x8C2F
	ANY_SAMPLES_PASSED_CONSERVATIVE       = 0x8D6A
	PRIMITIVES_GENERATED                  = 0x8C87
	TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN = 0x8C88
	TIME_ELAPSED                          = 0x88BF
	TIMESTAMP                             = 0x8E28
	QUERY_RESULT                          = 0x8866
	QUERY_RESULT_AVAILABLE                = 0x8867

	// Sync objects
	SYNC_STATUS                = 0x9114
	SYNC_GPU_COMMANDS_COMPLETE = 0x9117
	UNSIGNALED                 = 0x9118
	SIGNALED                   = 0x9119
	ALREADY_SIGNALED           = 0x911A
	TIMEOUT_EXPIRED            = 0x911B
	CONDITION_SATISFIED        = 0x911C
	WAIT_FAILED                = 0x911D
	SYNC_FLUSH_COMMANDS_BIT    = 0x00000001

	TIMEOUT_IGNORED uint64 = 0xFFFFFFFFFFFFFFFF

	// Capabilities
	CULL_FACE        = 0x0B44
	DEPTH_TEST       = 0x0B71
	STENCIL_TEST     = 0x0B90
	BLEND            = 0x0BE2
	MULTISAMPLE      = 0x809D
	FRAMEBUFFER_SRGB = 0x8DB9

	// Primitives
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
)
