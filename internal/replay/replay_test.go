package replay

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_normalizer/internal/timeseries"
)

var startTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// recorder collects replay events for assertions.
type recorder struct {
	states    []State
	points    []Point
	summaries []Summary
}

func (r *recorder) OnState(s State)     { r.states = append(r.states, s) }
func (r *recorder) OnPoint(p Point)     { r.points = append(r.points, p) }
func (r *recorder) OnSummary(s Summary) { r.summaries = append(r.summaries, s) }

func makeRatioSeries() timeseries.Series {
	times := []time.Time{
		startTime,
		startTime.Add(24 * time.Hour),
		startTime.Add(48 * time.Hour),
	}
	return timeseries.New(times, []float64{1.0, math.NaN(), 0.98})
}

func TestReplayer_InitialState(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	s := r.State()
	assert.Equal(t, startTime, s.Time)
	assert.Equal(t, 3600.0, s.Speed)
	assert.False(t, s.Running)

	tr := r.TimeRange()
	assert.Equal(t, startTime, tr.Start)
	assert.Equal(t, startTime.Add(48*time.Hour), tr.End)
}

func TestReplayer_StepEmitsDuePoints(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.Step(24 * time.Hour)

	require.Len(t, rec.points, 2)
	assert.Equal(t, startTime, rec.points[0].Timestamp)
	assert.False(t, rec.points[0].Gap)
	assert.Equal(t, 1.0, rec.points[0].Ratio)
	assert.True(t, rec.points[1].Gap, "NaN entry replays as a gap")

	last := rec.summaries[len(rec.summaries)-1]
	assert.Equal(t, 1, last.Points)
	assert.Equal(t, 1, last.Gaps)
	assert.InDelta(t, 1.0, last.MeanRatio, 1e-9)
}

func TestReplayer_StepStopsAtEnd(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.Step(240 * time.Hour)

	require.Len(t, rec.points, 3)
	s := r.State()
	assert.Equal(t, startTime.Add(48*time.Hour), s.Time, "clamped to range end")
	assert.False(t, s.Running)

	last := rec.summaries[len(rec.summaries)-1]
	assert.Equal(t, 2, last.Points)
	assert.Equal(t, 1, last.Gaps)
	assert.InDelta(t, (1.0+0.98)/2, last.MeanRatio, 1e-9)
}

func TestReplayer_SeekResetsSummary(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.Step(240 * time.Hour)
	r.Seek(startTime)

	s := r.State()
	assert.Equal(t, startTime, s.Time)

	last := rec.summaries[len(rec.summaries)-1]
	assert.Equal(t, 0, last.Points)
	assert.Equal(t, 0, last.Gaps)

	// Replays the same points again after the seek
	before := len(rec.points)
	r.Step(240 * time.Hour)
	assert.Len(t, rec.points, before+3)
}

func TestReplayer_SeekClampsToRange(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.Seek(startTime.Add(-time.Hour))
	assert.Equal(t, startTime, r.State().Time)

	r.Seek(startTime.Add(1000 * time.Hour))
	assert.Equal(t, startTime.Add(48*time.Hour), r.State().Time)
}

func TestReplayer_SetSpeedClamps(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.SetSpeed(0)
	assert.Equal(t, 1.0, r.State().Speed)

	r.SetSpeed(1e9)
	assert.Equal(t, 604800.0, r.State().Speed)
}

func TestReplayer_StartPause(t *testing.T) {
	rec := &recorder{}
	r := New(makeRatioSeries(), rec)

	r.Start()
	assert.True(t, r.State().Running)

	r.Pause()
	assert.False(t, r.State().Running)
}
