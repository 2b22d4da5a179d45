package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_normalizer/internal/timeseries"
)

var startTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func makeSeries(values []float64, start time.Time, interval time.Duration) timeseries.Series {
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = start.Add(time.Duration(i) * interval)
	}
	return timeseries.New(times, values)
}

func TestStore_PutAndGet(t *testing.T) {
	s := New()
	s.Put("poa_irradiance", "W/m²", makeSeries([]float64{0, 500, 1000}, startTime, time.Hour))

	ch, ok := s.Get("poa_irradiance")
	require.True(t, ok)
	assert.Equal(t, "poa_irradiance", ch.Name)
	assert.Equal(t, "W/m²", ch.Unit)
	assert.Equal(t, 3, ch.Series.Len())

	_, ok = s.Get("nonexistent")
	assert.False(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	s := New()
	s.Put("energy", "Wh", makeSeries([]float64{100}, startTime, time.Hour))
	s.Put("energy", "Wh", makeSeries([]float64{100, 200}, startTime, time.Hour))

	ch, ok := s.Get("energy")
	require.True(t, ok)
	assert.Equal(t, 2, ch.Series.Len())
}

func TestStore_ChannelsSorted(t *testing.T) {
	s := New()
	s.Put("normalized_energy", "ratio", makeSeries([]float64{1}, startTime, time.Hour))
	s.Put("measured_energy", "Wh", makeSeries([]float64{7200}, startTime, time.Hour))
	s.Put("cell_temperature", "°C", makeSeries([]float64{35}, startTime, time.Hour))

	channels := s.Channels()
	require.Len(t, channels, 3)
	assert.Equal(t, "cell_temperature", channels[0].Name)
	assert.Equal(t, "measured_energy", channels[1].Name)
	assert.Equal(t, "normalized_energy", channels[2].Name)
}

func TestStore_TimeRange(t *testing.T) {
	s := New()
	s.Put("energy", "Wh", makeSeries([]float64{1, 2, 3}, startTime, 24*time.Hour))

	tr, ok := s.TimeRange("energy")
	require.True(t, ok)
	assert.Equal(t, startTime, tr.Start)
	assert.Equal(t, startTime.Add(48*time.Hour), tr.End)

	_, ok = s.TimeRange("nonexistent")
	assert.False(t, ok)
}

func TestStore_GlobalTimeRange(t *testing.T) {
	s := New()

	_, ok := s.GlobalTimeRange()
	assert.False(t, ok)

	s.Put("a", "W", makeSeries([]float64{1, 2}, startTime, time.Hour))
	s.Put("b", "W", makeSeries([]float64{1, 2}, startTime.Add(-time.Hour), 4*time.Hour))

	tr, ok := s.GlobalTimeRange()
	require.True(t, ok)
	assert.Equal(t, startTime.Add(-time.Hour), tr.Start)
	assert.Equal(t, startTime.Add(3*time.Hour), tr.End)
}
