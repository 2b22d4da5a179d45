package store

import (
	"sort"
	"sync"

	"pv_normalizer/internal/model"
	"pv_normalizer/internal/timeseries"
)

// Channel is a named series with a display unit, e.g. the POA irradiance
// input or the normalized-ratio output of a run.
type Channel struct {
	Name   string
	Unit   string
	Series timeseries.Series
}

// Store holds the named series of a normalization run for the server. Series
// are registered whole and never mutated afterwards, so reads are cheap.
type Store struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

func New() *Store {
	return &Store{channels: make(map[string]Channel)}
}

// Put registers a channel, replacing any previous series under the same name.
func (s *Store) Put(name, unit string, series timeseries.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[name] = Channel{Name: name, Unit: unit, Series: series}
}

// Get returns the named channel.
func (s *Store) Get(name string) (Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.channels[name]
	return ch, ok
}

// Channels returns all channels sorted by name.
func (s *Store) Channels() []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	channels := make([]Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].Name < channels[j].Name })
	return channels
}

// TimeRange returns the interval covered by the named channel.
func (s *Store) TimeRange(name string) (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.channels[name]
	if !ok {
		return model.TimeRange{}, false
	}
	return ch.Series.TimeRange()
}

// GlobalTimeRange returns the union of all channel ranges.
func (s *Store) GlobalTimeRange() (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tr model.TimeRange
	found := false
	for _, ch := range s.channels {
		r, ok := ch.Series.TimeRange()
		if !ok {
			continue
		}
		if !found {
			tr = r
			found = true
			continue
		}
		if r.Start.Before(tr.Start) {
			tr.Start = r.Start
		}
		if r.End.After(tr.End) {
			tr.End = r.End
		}
	}
	return tr, found
}
