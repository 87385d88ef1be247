// internal/store/store.go
package store

import (
	"context"
	"errors"

	"palmier/internal/models"
)

// ErrNotFound reports that no session is persisted under the requested code.
// Callers use it to tell "game does not exist" apart from storage failures.
var ErrNotFound = errors.New("session not found")

// Store is the durable mapping from session code to session record.
//
// Save replaces the whole record atomically: a concurrent Load observes either
// the previous record or the new one, never a torn mix. Load always performs a
// fresh read; no implementation keeps a cache between calls.
type Store interface {
	Load(ctx context.Context, code string) (*models.Session, error)
	Save(ctx context.Context, code string, sess *models.Session) error
	ListCodes(ctx context.Context) ([]string, error)
}
