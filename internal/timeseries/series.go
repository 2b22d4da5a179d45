package timeseries

import (
	"fmt"
	"math"
	"time"

	"pv_normalizer/internal/model"
)

// Series is an ordered time-indexed sequence of float64 samples. Times must
// be ascending. Freq, when non-zero, is the explicit sampling interval of the
// series; zero means the interval is unset and must be inferred when needed.
//
// Series values are treated as immutable: every operation in this package
// returns a freshly allocated series and never mutates its inputs.
type Series struct {
	Times  []time.Time
	Values []float64
	Freq   time.Duration
}

// New builds a series over the given timestamps and values. The two slices
// must have equal length.
func New(times []time.Time, values []float64) Series {
	if len(times) != len(values) {
		panic(fmt.Sprintf("timeseries: %d timestamps for %d values", len(times), len(values)))
	}
	return Series{Times: times, Values: values}
}

// WithFreq returns a copy of the series with an explicit sampling interval.
func (s Series) WithFreq(freq time.Duration) Series {
	s.Freq = freq
	return s
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Values)
}

// TimeRange returns the interval covered by the series timestamps.
func (s Series) TimeRange() (model.TimeRange, bool) {
	if s.Len() == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{Start: s.Times[0], End: s.Times[s.Len()-1]}, true
}

// ResolveFreq returns the series' sampling interval. An explicit Freq wins
// verbatim; otherwise the interval is inferred from timestamp spacing.
func ResolveFreq(s Series) (time.Duration, error) {
	if s.Freq > 0 {
		return s.Freq, nil
	}
	return InferFreq(s)
}

// InferFreq derives the sampling interval from timestamp spacing. All
// consecutive gaps must be identical; at least three timestamps (two gaps)
// are required. Failures wrap model.ErrAmbiguousFrequency.
func InferFreq(s Series) (time.Duration, error) {
	if s.Len() < 3 {
		return 0, fmt.Errorf("%d samples is too few to infer an interval: %w", s.Len(), model.ErrAmbiguousFrequency)
	}

	step := s.Times[1].Sub(s.Times[0])
	if step <= 0 {
		return 0, fmt.Errorf("non-increasing timestamps: %w", model.ErrAmbiguousFrequency)
	}
	for i := 2; i < len(s.Times); i++ {
		if s.Times[i].Sub(s.Times[i-1]) != step {
			return 0, fmt.Errorf("uneven spacing at %s: %w", s.Times[i].Format(time.RFC3339), model.ErrAmbiguousFrequency)
		}
	}
	return step, nil
}

// ResampleSum sums samples into consecutive intervals of the given width.
// Each output timestamp is the interval start (the sample timestamp truncated
// to the interval). Over power samples this approximates integration to
// energy per interval.
func ResampleSum(s Series, freq time.Duration) Series {
	times := make([]time.Time, 0, s.Len())
	values := make([]float64, 0, s.Len())

	for i, t := range s.Times {
		bucket := t.Truncate(freq)
		n := len(times)
		if n > 0 && times[n-1].Equal(bucket) {
			values[n-1] += s.Values[i]
			continue
		}
		times = append(times, bucket)
		values = append(values, s.Values[i])
	}

	return Series{Times: times, Values: values, Freq: freq}
}

// Divide returns numer / denom element-wise, aligned by timestamp on numer's
// index. The result carries exactly numer's timestamps; positions with no
// matching denom timestamp become NaN. A zero denominator divides through to
// ±Inf. Gaps are data markers for downstream consumers, not errors.
func Divide(numer, denom Series) Series {
	byTime := make(map[int64]float64, denom.Len())
	for i, t := range denom.Times {
		byTime[t.UnixNano()] = denom.Values[i]
	}

	times := append([]time.Time(nil), numer.Times...)
	values := make([]float64, numer.Len())
	for i, t := range times {
		d, ok := byTime[t.UnixNano()]
		if !ok {
			values[i] = math.NaN()
			continue
		}
		values[i] = numer.Values[i] / d
	}

	return Series{Times: times, Values: values, Freq: numer.Freq}
}
