package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/glfake"
	"github.com/bloeys/glw/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFake(t *testing.T) *glfake.GL {
	t.Helper()
	g := glfake.New()
	glapi.SetCurrent(g)
	t.Cleanup(func() { glapi.SetCurrent(nil) })
	return g
}

func TestQueryBeginEnd(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_SamplesPassed)
	q.Begin()
	assert.True(t, q.IsActive())
	assert.Equal(t, q.Id, g.ActiveQueries[glapi.SAMPLES_PASSED])

	q.End()
	assert.False(t, q.IsActive())
	assert.True(t, q.IsPending())
	assert.Zero(t, g.ActiveQueries[glapi.SAMPLES_PASSED])

	_, ok := q.PollResult()
	assert.False(t, ok)

	g.CompleteQuery(q.Id, 42)
	res, ok := q.PollResult()
	require.True(t, ok)
	assert.Equal(t, uint64(42), res)
	assert.False(t, q.IsPending())
	assert.Zero(t, g.ErrorCount())
}

func TestQueryBeginWhilePendingIsSkipped(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_PrimitivesGenerated)

	calls := 0
	q.Run(func() { calls++ })
	q.Run(func() { calls++ })

	assert.Equal(t, 2, calls, "the callable always runs")
	assert.False(t, q.IsActive())
	assert.True(t, q.IsPending())
	assert.Zero(t, g.ErrorCount(), "the skipped Begin must not issue an unmatched End")

	g.CompleteQuery(q.Id, 3)
	assert.True(t, q.IsResultAvailable())
	assert.True(t, q.IsPending(), "an available result stays pending until read")

	q.Begin()
	assert.False(t, q.IsActive(), "Begin is skipped until the result is read")

	res, ok := q.PollResult()
	require.True(t, ok)
	assert.Equal(t, uint64(3), res)

	q.Begin()
	assert.True(t, q.IsActive(), "Begin works again once the result is read")
	q.End()
}

func TestQueryResultSurvivesSkippedRun(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_SamplesPassed)
	q.Run(func() {})
	g.CompleteQuery(q.Id, 42)

	// The result is in but unread, so this run must not restart the query
	q.Run(func() {})
	assert.False(t, q.IsActive())
	assert.True(t, q.IsPending())

	res, ok := q.PollResult()
	require.True(t, ok)
	assert.Equal(t, uint64(42), res)
	assert.False(t, q.IsPending())
	assert.Zero(t, g.ErrorCount())
}

func TestQueryTimestamp(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_Timestamp)
	assert.Panics(t, func() { q.Begin() })

	q.Counter()
	assert.True(t, q.IsPending())
	assert.Equal(t, uint32(glapi.TIMESTAMP), g.Queries[q.Id].Target)

	g.CompleteQuery(q.Id, 5000)
	assert.Equal(t, 5*time.Microsecond, q.ResultDuration())

	other := queries.NewQuery(queries.QueryTarget_AnySamplesPassed)
	assert.Panics(t, func() { other.Counter() })
	assert.Panics(t, func() { other.ResultDuration() })
}

func TestQueryTimeElapsed(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_TimeElapsed)
	q.Run(func() {})

	g.CompleteQuery(q.Id, uint64(2*time.Millisecond))
	assert.True(t, q.IsResultAvailable())
	assert.Equal(t, 2*time.Millisecond, q.ResultDuration())
}

func TestQueryWaitResult(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_SamplesPassed)
	q.Run(func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := q.WaitResult(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	g.CompleteQuery(q.Id, 7)
	res, err := q.WaitResult(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res)
}

func TestQueryDelete(t *testing.T) {

	g := newFake(t)

	q := queries.NewQuery(queries.QueryTarget_SamplesPassed)
	id := q.Id
	q.Begin()

	q.Delete()
	q.Delete()

	assert.Zero(t, q.Id)
	assert.False(t, q.IsActive())
	assert.Nil(t, g.Queries[id])
	assert.Zero(t, g.ActiveQueries[glapi.SAMPLES_PASSED])
	assert.Zero(t, g.ErrorCount())
}

func TestQueryTargets(t *testing.T) {
	assert.Equal(t, uint32(glapi.ANY_SAMPLES_PASSED_CONSERVATIVE), queries.QueryTarget_AnySamplesPassedConservative.ToGL())
	assert.Equal(t, uint32(glapi.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN), queries.QueryTarget_TransformFeedbackPrimitivesWritten.ToGL())
	assert.True(t, queries.QueryTarget_TimeElapsed.IsTime())
	assert.False(t, queries.QueryTarget_SamplesPassed.IsTime())
	assert.Panics(t, func() { queries.NewQuery(queries.QueryTarget_Unknown) })
}
