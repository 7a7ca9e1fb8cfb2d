// Package wire defines the JSON messages the LAN relay exchanges with
// browsers: a move object or a FEN string, nothing richer.
package wire

import (
	"fmt"
)

// Message types.
const (
	TypeJoin   = "join"   // client -> relay: enter a game room
	TypeAssign = "assign" // relay -> client: colour assignment
	TypeMove   = "move"   // either direction: a committed move + resync FEN
	TypeState  = "state"  // either direction: full-state resynchronization
	TypeError  = "error"  // relay -> client: rejected input
)

// MoveObject is the wire form of a move: algebraic squares and an
// optional lowercase promotion letter.
type MoveObject struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Validate checks square names and the promotion letter.
func (m MoveObject) Validate() error {
	if !validSquare(m.From) {
		return fmt.Errorf("invalid from square %q", m.From)
	}
	if !validSquare(m.To) {
		return fmt.Errorf("invalid to square %q", m.To)
	}
	switch m.Promotion {
	case "", "q", "r", "b", "n":
	default:
		return fmt.Errorf("invalid promotion %q", m.Promotion)
	}
	return nil
}

func validSquare(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// Message is the single envelope for all relay traffic. Unused fields are
// omitted from the JSON encoding.
type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId,omitempty"`
	Colour string      `json:"color,omitempty"` // "w" or "b" on assign
	Move   *MoveObject `json:"move,omitempty"`
	FEN    string      `json:"fen,omitempty"`
	Text   string      `json:"text,omitempty"` // human-readable error text
}

// Validate checks the envelope for the fields its type requires.
func (m Message) Validate() error {
	switch m.Type {
	case TypeJoin:
		if m.GameID == "" {
			return fmt.Errorf("join without gameId")
		}
	case TypeMove:
		if m.Move == nil {
			return fmt.Errorf("move message without move object")
		}
		if err := m.Move.Validate(); err != nil {
			return err
		}
	case TypeState:
		if m.FEN == "" {
			return fmt.Errorf("state message without fen")
		}
	case TypeAssign, TypeError:
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}
