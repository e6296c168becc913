package sessions

import (
	"context"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, ttl/2), ttl: ttl}
}

func (s *MemoryStore) Create(_ context.Context, session Session) (string, error) {
	token := uuid.NewString()
	s.cache.Set(token, session, s.ttl)
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	value, found := s.cache.Get(token)
	if !found {
		return nil, ErrNotFound
	}

	session := value.(Session)
	s.cache.Set(token, session, s.ttl)
	return &session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
