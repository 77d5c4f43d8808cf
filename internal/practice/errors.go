package practice

import "errors"

// Sentinel errors returned by the engine. Callers match them with
// errors.Is; anything else is a storage failure wrapped with context.
var (
	// ErrInvalidInput marks malformed user input (bad word pair, bad
	// reminder time). Nothing is mutated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an action referencing a word that is not the
	// current one for the user: an unknown id, or a stale/duplicate
	// button tap. Treated as a no-op, never retried.
	ErrNotFound = errors.New("not found")

	// ErrNoSession marks a reveal/judge with no practice session active.
	ErrNoSession = errors.New("no active session")
)
