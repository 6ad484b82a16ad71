package realtime

import "encoding/json"

// phoenixMessage is the raw frame format on the Realtime channel.
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref,omitempty"`
}

func parseMessage(data []byte) (*phoenixMessage, error) {
	var msg phoenixMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// isChangeEvent reports whether the frame is a posts-table change
// notification rather than channel bookkeeping (join replies, heartbeats).
func isChangeEvent(event string) bool {
	switch event {
	case "INSERT", "UPDATE", "DELETE":
		return true
	}
	return false
}
