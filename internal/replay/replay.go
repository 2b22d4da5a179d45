// Package replay walks a performance-ratio series in simulated time and
// emits its points over a callback, for dashboards watching a normalization
// run unfold.
package replay

import (
	"math"
	"sync"
	"time"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/timeseries"
)

// State is the current replay position.
type State struct {
	Time    time.Time `json:"time"`
	Speed   float64   `json:"speed"`
	Running bool      `json:"running"`
}

// Point is one emitted ratio sample. Gap marks a NaN entry (misaligned
// timestamp in the normalization, carried through as missing data).
type Point struct {
	Timestamp time.Time
	Ratio     float64
	Gap       bool
}

// Summary accumulates over the points emitted so far.
type Summary struct {
	Points    int     `json:"points"`
	Gaps      int     `json:"gaps"`
	MeanRatio float64 `json:"mean_ratio"`
}

// Callback receives replay events.
type Callback interface {
	OnState(state State)
	OnPoint(point Point)
	OnSummary(summary Summary)
}

// Replayer advances through a series at a configurable ratio of simulated to
// wall-clock seconds.
type Replayer struct {
	mu       sync.Mutex
	series   timeseries.Series
	callback Callback

	running   bool
	speed     float64
	simTime   time.Time
	pos       int
	timeRange model.TimeRange

	points   int
	gaps     int
	ratioSum float64
	stopCh   chan struct{}
}

// New builds a replayer over the given series. Speed defaults to 3600
// (one simulated hour per wall second).
func New(series timeseries.Series, cb Callback) *Replayer {
	r := &Replayer{
		series:   series,
		callback: cb,
		speed:    3600,
	}
	if tr, ok := series.TimeRange(); ok {
		r.timeRange = tr
		r.simTime = tr.Start
	}
	return r
}

// State returns the current replay state.
func (r *Replayer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{Time: r.simTime, Speed: r.speed, Running: r.running}
}

// TimeRange returns the replayed series' time range.
func (r *Replayer) TimeRange() model.TimeRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timeRange
}

// Start begins the replay loop.
func (r *Replayer) Start() {
	r.mu.Lock()
	if r.running || r.series.Len() == 0 {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	r.broadcastState()
	go r.loop()
}

// Pause stops the replay loop.
func (r *Replayer) Pause() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.broadcastState()
}

// SetSpeed sets the simulated-seconds-per-wall-second multiplier.
func (r *Replayer) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 604800 {
		speed = 604800
	}

	r.mu.Lock()
	r.speed = speed
	r.mu.Unlock()

	r.broadcastState()
}

// Seek jumps to a specific time and resets the summary accumulators.
func (r *Replayer) Seek(t time.Time) {
	r.mu.Lock()
	if t.Before(r.timeRange.Start) {
		t = r.timeRange.Start
	}
	if t.After(r.timeRange.End) {
		t = r.timeRange.End
	}
	r.simTime = t

	r.pos = 0
	for r.pos < r.series.Len() && r.series.Times[r.pos].Before(t) {
		r.pos++
	}
	r.points = 0
	r.gaps = 0
	r.ratioSum = 0
	r.mu.Unlock()

	r.broadcastState()
	r.broadcastSummary()
}

// Step advances simulated time by delta and emits any points passed over.
// Useful for deterministic testing; does not require Start().
func (r *Replayer) Step(delta time.Duration) {
	r.mu.Lock()
	r.simTime = r.simTime.Add(delta)
	ended := false
	if !r.simTime.Before(r.timeRange.End) {
		r.simTime = r.timeRange.End
		ended = true
	}
	emit := r.collectDue()
	if ended {
		r.running = false
	}
	r.mu.Unlock()

	for _, p := range emit {
		r.callback.OnPoint(p)
	}
	r.broadcastState()
	r.broadcastSummary()
}

// collectDue gathers points up to simTime and updates the accumulators.
// Must be called with mu held.
func (r *Replayer) collectDue() []Point {
	var emit []Point
	for r.pos < r.series.Len() && !r.series.Times[r.pos].After(r.simTime) {
		v := r.series.Values[r.pos]
		p := Point{Timestamp: r.series.Times[r.pos], Ratio: v, Gap: math.IsNaN(v)}
		if p.Gap {
			r.gaps++
		} else {
			r.points++
			r.ratioSum += v
		}
		emit = append(emit, p)
		r.pos++
	}
	return emit
}

const tickInterval = 100 * time.Millisecond

func (r *Replayer) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if r.tick() {
				return
			}
		}
	}
}

// tick advances one wall tick; returns true when the replay reached the end.
func (r *Replayer) tick() bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return true
	}
	delta := time.Duration(r.speed * float64(tickInterval))
	r.simTime = r.simTime.Add(delta)
	ended := false
	if !r.simTime.Before(r.timeRange.End) {
		r.simTime = r.timeRange.End
		ended = true
	}
	emit := r.collectDue()
	if ended {
		r.running = false
	}
	r.mu.Unlock()

	for _, p := range emit {
		r.callback.OnPoint(p)
	}
	r.broadcastState()
	if len(emit) > 0 || ended {
		r.broadcastSummary()
	}
	return ended
}

func (r *Replayer) broadcastState() {
	r.callback.OnState(r.State())
}

func (r *Replayer) broadcastSummary() {
	r.mu.Lock()
	s := Summary{Points: r.points, Gaps: r.gaps}
	if r.points > 0 {
		s.MeanRatio = r.ratioSum / float64(r.points)
	}
	r.mu.Unlock()
	r.callback.OnSummary(s)
}
