// Package hub provides a channel-based websocket broadcast hub for pushing
// detection events and status updates to dashboard clients.
package hub

import "encoding/json"

// Envelope types pushed to dashboard clients.
const (
	TypeAlert  = "alert"
	TypeStatus = "status"
	TypeReload = "reload"
)

// Envelope wraps a payload with its kind so clients can demultiplex a
// single socket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope encodes a payload into an envelope.
func NewEnvelope(kind string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: kind, Payload: data}, nil
}
