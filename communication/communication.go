// Package communication holds the messages exchanged between the decision
// server and its clients.
package communication

import (
	"connectline/game"
	"encoding/json"
	"fmt"
)

// Websocket message types
const (
	TypeDecide   = "decide"
	TypeProgress = "progress"
	TypeResult   = "result"
	TypeError    = "error"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecideRequest asks for the column side should play. Zero rules select the
// server's rules.
type DecideRequest struct {
	Rules    game.Rules    `json:"rules"`
	Snapshot game.Snapshot `json:"snapshot"`
	Side     game.Side     `json:"side"`
}

type DecideResponse struct {
	ID     string `json:"id"`
	Column int    `json:"column"`
	Tactic string `json:"tactic"`
	Policy []int  `json:"policy,omitempty"`
}

type Progress struct {
	ID        string `json:"id"`
	Iteration int    `json:"iteration"`
	Total     int    `json:"total"`
}

type Error struct {
	Error string `json:"error"`
}

// NewRequest describes pos with side to move.
func NewRequest(pos *game.Position, side game.Side) DecideRequest {
	return DecideRequest{Rules: pos.Rules(), Snapshot: pos.Snapshot(), Side: side}
}

// Position validates the request and rebuilds its position.
func (r DecideRequest) Position() (*game.Position, error) {
	if err := r.Side.Check(); err != nil {
		return nil, err
	}
	return game.FromSnapshot(r.Rules, r.Snapshot)
}

func NewMessage(typ string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s payload: %w", typ, err)
	}
	return Message{Type: typ, Payload: data}, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", m.Type, err)
	}
	return nil
}
