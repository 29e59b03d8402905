package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is a move as clients send it, over the socket or in a REST body:
// {"from":"e2","to":"e4"} or {"from":"e7","to":"e8","promotion":"q"}.
type MovePayload struct {
	From      model.Square `json:"from"`
	To        model.Square `json:"to"`
	Promotion model.Kind   `json:"promotion,omitempty"`
}

// UnmarshalJSON rejects payloads missing either square, so an absent field
// never decodes as a1.
func (p *MovePayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		From      *model.Square `json:"from"`
		To        *model.Square `json:"to"`
		Promotion model.Kind    `json:"promotion"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	if raw.From == nil || raw.To == nil {
		return errors.Wrap(errors.ErrInvalidArgument, "move needs both from and to")
	}
	*p = MovePayload{From: *raw.From, To: *raw.To, Promotion: raw.Promotion}
	return nil
}

// Move turns the payload into a move for the given side.
func (p MovePayload) Move(mover model.Side) model.Move {
	return model.NewMove(p.From, p.To, mover).WithPromotion(p.Promotion)
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  string `json:"color"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in a typed envelope.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
