package ws

import (
	"log"
	"time"

	"pv_normalizer/internal/replay"
)

// Bridge implements replay.Callback and broadcasts events to the hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnState(s replay.State) {
	msg, err := NewEnvelope(TypeReplayState, ReplayStatePayload{
		Time:    s.Time.Format(time.RFC3339),
		Speed:   s.Speed,
		Running: s.Running,
	})
	if err != nil {
		log.Printf("Error marshaling replay state: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnPoint(p replay.Point) {
	payload := RatioPointPayload{
		Timestamp: p.Timestamp.Format(time.RFC3339),
		Gap:       p.Gap,
	}
	if !p.Gap {
		ratio := p.Ratio
		payload.Ratio = &ratio
	}
	msg, err := NewEnvelope(TypeRatioPoint, payload)
	if err != nil {
		log.Printf("Error marshaling ratio point: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnSummary(s replay.Summary) {
	msg, err := NewEnvelope(TypeRunSummary, RunSummaryPayload{
		Points:    s.Points,
		Gaps:      s.Gaps,
		MeanRatio: s.MeanRatio,
	})
	if err != nil {
		log.Printf("Error marshaling run summary: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
