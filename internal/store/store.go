// Package store persists game snapshots so a game survives a restart. A
// snapshot is the setup plus the moves played, which is enough to replay the
// game through the rules engine.
package store

import (
	"context"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/errors"
)

type Snapshot struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"startFen"`
	Moves     []string  `json:"moves"`
	White     string    `json:"white,omitempty"`
	Black     string    `json:"black,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store saves and loads snapshots by game id. Load returns ErrGameNotFound for
// an unknown id.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open builds the backend named by cfg.Driver.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	case "badger":
		return NewBadgerStore(cfg.BadgerDir, cfg.SessionTTL)
	case "postgres":
		return NewPostgresStore(cfg.DatabaseURL)
	}
	return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown store driver %q", cfg.Driver)
}

func cloneSnapshot(snap *Snapshot) *Snapshot {
	c := *snap
	c.Moves = append([]string{}, snap.Moves...)
	return &c
}
