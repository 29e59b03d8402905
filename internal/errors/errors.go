// Package errors provides the sentinel errors shared by the rules engine, the
// game session and the service layer. Check them with errors.Is().
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates malformed caller input, such as a square off
	// the board or a promotion move without a promotion piece.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState indicates an operation the current state cannot support,
	// such as moving from an empty square.
	ErrIllegalState = errors.New("illegal state")

	// ErrInvalidPosition indicates a malformed position description.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrIllegalMove is how the service layer reports a rejected move.
	ErrIllegalMove = errors.New("illegal move")

	ErrGameNotFound  = errors.New("game not found")
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrAlreadyQueued = errors.New("player already in queue")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrap adds context to an error while preserving it for errors.Is().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is forwards to the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
