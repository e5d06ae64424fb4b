package shaders

import (
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
	ShaderType_TessControl
	ShaderType_TessEvaluation
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return glapi.VERTEX_SHADER
	case ShaderType_Fragment:
		return glapi.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return glapi.GEOMETRY_SHADER
	case ShaderType_TessControl:
		return glapi.TESS_CONTROL_SHADER
	case ShaderType_TessEvaluation:
		return glapi.TESS_EVALUATION_SHADER
	}

	assert.T(false, "Unknown shader type '%d'", s)
	return 0
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	case ShaderType_TessControl:
		return "tess_control"
	case ShaderType_TessEvaluation:
		return "tess_evaluation"
	default:
		return "unknown"
	}
}

// shaderTypeFromMarker maps the word after '//shader:' in a combined source
func shaderTypeFromMarker(marker string) ShaderType {

	for t := ShaderType_Vertex; t <= ShaderType_TessEvaluation; t++ {
		if t.String() == marker {
			return t
		}
	}

	return ShaderType_Unknown
}
