package ws

import (
	"encoding/json"
)

// Message types. Clients drive the replay; the server streams ratio points
// and run summaries back.
const (
	// Client -> server
	TypeReplayStart    = "replay:start"
	TypeReplayPause    = "replay:pause"
	TypeReplaySetSpeed = "replay:set_speed"
	TypeReplaySeek     = "replay:seek"

	// Server -> client
	TypeReplayState = "replay:state"
	TypeRatioPoint  = "ratio:point"
	TypeRunSummary  = "summary:update"
	TypeDataLoaded  = "data:loaded"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals a payload into a wire-ready envelope. A nil payload
// produces an envelope with only the type field.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	env := Envelope{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// Client -> server payloads

type SetSpeedPayload struct {
	Speed float64 `json:"speed"`
}

type SeekPayload struct {
	Timestamp string `json:"timestamp"`
}

// Server -> client payloads

type ReplayStatePayload struct {
	Time    string  `json:"time"`
	Speed   float64 `json:"speed"`
	Running bool    `json:"running"`
}

// RatioPointPayload carries one performance-ratio sample. Ratio is null for
// gap entries (NaN in the normalized series), since NaN has no JSON encoding.
type RatioPointPayload struct {
	Timestamp string   `json:"timestamp"`
	Ratio     *float64 `json:"ratio"`
	Gap       bool     `json:"gap"`
}

type RunSummaryPayload struct {
	Points    int     `json:"points"`
	Gaps      int     `json:"gaps"`
	MeanRatio float64 `json:"mean_ratio"`
}

type ChannelInfo struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type TimeRangeInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DataLoadedPayload struct {
	Channels  []ChannelInfo `json:"channels"`
	TimeRange TimeRangeInfo `json:"time_range"`
}
