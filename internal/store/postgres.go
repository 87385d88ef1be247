// internal/store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palmier/internal/models"
)

// PostgresStore keeps each session as a single jsonb document keyed by its
// code. The row upsert gives Save its whole-record atomicity.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the sessions table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			code  TEXT PRIMARY KEY,
			state JSONB NOT NULL
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

func (p *PostgresStore) Load(ctx context.Context, code string) (*models.Session, error) {
	var sess models.Session
	err := p.pool.QueryRow(ctx, `SELECT state FROM sessions WHERE code = $1`, code).Scan(&sess)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", code, err)
	}
	return &sess, nil
}

func (p *PostgresStore) Save(ctx context.Context, code string, sess *models.Session) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO sessions (code, state) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET state = EXCLUDED.state
	`, code, sess)
	if err != nil {
		return fmt.Errorf("save session %s: %w", code, err)
	}
	return nil
}

func (p *PostgresStore) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT code FROM sessions ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan session code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return codes, nil
}
