package game

import (
	"errors"
	"fmt"
)

// Side is the owner of a cell. The two players are encoded as signed unit
// values so that the opponent of a side is its negation.
type Side int8

const (
	Empty   Side = 0
	PlayerA Side = 1
	PlayerB Side = -1
)

var (
	ErrInvalidSide     = errors.New("invalid side")
	ErrInvalidRules    = errors.New("invalid rules")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrColumnFull      = errors.New("column is full")
	ErrColumnRange     = errors.New("column out of range")
)

// Opponent returns the other player.
func (s Side) Opponent() Side {
	return -s
}

func (s Side) Valid() bool {
	return s == PlayerA || s == PlayerB
}

// Check returns ErrInvalidSide unless s is one of the two players.
func (s Side) Check() error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSide, s)
	}
	return nil
}

func (s Side) String() string {
	switch s {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	case Empty:
		return "-"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

// Cell is a board coordinate.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}
