// internal/session/errors.go
package session

import "errors"

// Sentinel errors carry the exact message the protocol puts in the
// {"error": ...} body, so the HTTP boundary can forward err.Error() as-is.
var (
	// ErrUsernameRequired: a create or join arrived with an empty username.
	ErrUsernameRequired = errors.New("Username is required")
	// ErrNotFound: the referenced code has no session.
	ErrNotFound = errors.New("Game not found")
	// ErrUsernameTaken: the username is already present in the session.
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrGameFull: the session already holds the maximum number of players.
	ErrGameFull = errors.New("Game is full")
)

// IsClientError reports whether err belongs to the taxonomy of caller
// mistakes, as opposed to storage or encoding failures.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrGameFull)
}
