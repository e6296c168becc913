package sessions

import (
	"context"
	"errors"
	"github.com/maxaizer/selectflow/internal/config"
	"github.com/maxaizer/selectflow/internal/domain/models"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	UserID   int64           `json:"user_id"`
	UserType models.UserType `json:"user_type"`
}

// Store keeps server-side sessions behind opaque tokens. Reading a session extends its lifetime.
type Store interface {
	Create(ctx context.Context, session Session) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

func NewStore(ctx context.Context, cfg config.SessionConfig) (Store, error) {
	if cfg.Store == config.RedisStore {
		return NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
	}
	return NewMemoryStore(cfg.TTL), nil
}
