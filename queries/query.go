package queries

import (
	"context"
	"runtime"
	"time"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

type QueryTarget int32

const (
	QueryTarget_Unknown QueryTarget = iota
	QueryTarget_SamplesPassed
	QueryTarget_AnySamplesPassed
	QueryTarget_AnySamplesPassedConservative
	QueryTarget_PrimitivesGenerated
	QueryTarget_TransformFeedbackPrimitivesWritten
	QueryTarget_TimeElapsed
	QueryTarget_Timestamp
)

func (t QueryTarget) ToGL() uint32 {

	switch t {
	case QueryTarget_SamplesPassed:
		return glapi.SAMPLES_PASSED
	case QueryTarget_AnySamplesPassed:
		return glapi.ANY_SAMPLES_PASSED
	case QueryTarget_AnySamplesPassedConservative:
		return glapi.ANY_SAMPLES_PASSED_CONSERVATIVE
	case QueryTarget_PrimitivesGenerated:
		return glapi.PRIMITIVES_GENERATED
	case QueryTarget_TransformFeedbackPrimitivesWritten:
		return glapi.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN
	case QueryTarget_TimeElapsed:
		return glapi.TIME_ELAPSED
	case QueryTarget_Timestamp:
		return glapi.TIMESTAMP
	}

	assert.T(false, "Unknown query target passed. QueryTarget '%d'", t)
	return 0
}

// IsTime is true for targets whose results are in nanoseconds
func (t QueryTarget) IsTime() bool {
	return t == QueryTarget_TimeElapsed || t == QueryTarget_Timestamp
}

// resultPollInterval is how often WaitResult checks for the result
const resultPollInterval = 200 * time.Microsecond

// Query is a query object locked to one target.
//
// Begin while an earlier result is still pending does nothing, as does the matching End,
// so a query can be issued every frame and read whenever its result shows up.
// A result stays pending until Result or PollResult reads it.
type Query struct {
	Id     uint32
	Target QueryTarget

	active  bool
	pending bool

	gl glapi.GL
}

func (q *Query) IsActive() bool {
	return q.active
}

// IsPending is true after End or Counter until Result or PollResult reads the result
func (q *Query) IsPending() bool {
	return q.pending
}

func (q *Query) Begin() {

	assert.T(q.Id != 0, "Begin called on a deleted query")
	assert.T(q.Target != QueryTarget_Timestamp, "timestamp queries use Counter instead of Begin/End")
	assert.T(!q.active, "Begin called on query id=%d that is already active", q.Id)

	if q.pending {
		return
	}

	q.gl.BeginQuery(q.Target.ToGL(), q.Id)
	q.active = true
}

func (q *Query) End() {

	if !q.active {
		return
	}

	q.gl.EndQuery(q.Target.ToGL())
	q.active = false
	q.pending = true
}

// Run wraps f in Begin and End
func (q *Query) Run(f func()) {
	q.Begin()
	f()
	q.End()
}

// Counter records the GPU time once all previous commands are done. Only valid for timestamp queries.
func (q *Query) Counter() {

	assert.T(q.Id != 0, "Counter called on a deleted query")
	assert.T(q.Target == QueryTarget_Timestamp, "Counter called on query id=%d whose target=%d isn't timestamp", q.Id, q.Target)

	q.gl.QueryCounter(q.Id, glapi.TIMESTAMP)
	q.pending = true
}

func (q *Query) IsResultAvailable() bool {

	assert.T(!q.active, "result of query id=%d requested while it's active", q.Id)

	return q.gl.GetQueryObjectui(q.Id, glapi.QUERY_RESULT_AVAILABLE) == glapi.TRUE
}

// Result blocks until the result is available
func (q *Query) Result() uint64 {

	assert.T(!q.active, "result of query id=%d requested while it's active", q.Id)

	res := q.gl.GetQueryObjectui64(q.Id, glapi.QUERY_RESULT)
	q.pending = false
	return res
}

// PollResult returns the result and true if it's available, without blocking
func (q *Query) PollResult() (uint64, bool) {

	if !q.IsResultAvailable() {
		return 0, false
	}

	return q.Result(), true
}

// ResultDuration is Result as a duration. Only valid for time elapsed and timestamp queries.
func (q *Query) ResultDuration() time.Duration {
	assert.T(q.Target.IsTime(), "ResultDuration called on query id=%d whose target=%d isn't a time query", q.Id, q.Target)
	return time.Duration(q.Result())
}

// WaitResult polls until the result is available or ctx is done.
// Like every GL call it must run on the thread owning the context.
func (q *Query) WaitResult(ctx context.Context) (uint64, error) {

	if res, ok := q.PollResult(); ok {
		return res, nil
	}

	ticker := time.NewTicker(resultPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
			if res, ok := q.PollResult(); ok {
				return res, nil
			}
		}
	}
}

func (q *Query) Delete() {

	if q.Id == 0 {
		return
	}

	if q.active {
		q.gl.EndQuery(q.Target.ToGL())
		q.active = false
	}

	q.gl.DeleteQuery(q.Id)
	q.Id = 0
	q.pending = false
	runtime.SetFinalizer(q, nil)
}

func NewQuery(target QueryTarget) *Query {

	q := &Query{
		Target: target,
		gl:     glapi.Current(),
	}

	// Validates the target early
	target.ToGL()

	q.Id = q.gl.GenQuery()
	if q.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL query")
	}

	runtime.SetFinalizer(q, func(q *Query) {
		glapi.QueueRelease(q.gl, glapi.ObjectKind_Query, q.Id)
	})

	return q
}
