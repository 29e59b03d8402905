package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS chess_sessions (
	id         TEXT PRIMARY KEY,
	start_fen  TEXT NOT NULL,
	moves      JSONB NOT NULL,
	white_id   TEXT NOT NULL DEFAULT '',
	black_id   TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore upserts snapshots into the chess_sessions table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create chess_sessions: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	moves, err := json.Marshal(snap.Moves)
	if err != nil {
		return err
	}
	q := `INSERT INTO chess_sessions (id, start_fen, moves, white_id, black_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			start_fen=EXCLUDED.start_fen,
			moves=EXCLUDED.moves,
			white_id=EXCLUDED.white_id,
			black_id=EXCLUDED.black_id,
			updated_at=EXCLUDED.updated_at`
	_, err = s.db.ExecContext(ctx, q, snap.ID, snap.StartFEN, moves, snap.White, snap.Black, snap.UpdatedAt)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	var (
		snap  = Snapshot{ID: id}
		moves []byte
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT start_fen, moves, white_id, black_id, updated_at FROM chess_sessions WHERE id = $1`, id)
	err := row.Scan(&snap.StartFEN, &moves, &snap.White, &snap.Black, &snap.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "snapshot %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(moves, &snap.Moves); err != nil {
		return nil, fmt.Errorf("decode moves of %s: %w", id, err)
	}
	return &snap, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chess_sessions WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
