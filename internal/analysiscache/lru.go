package analysiscache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const defaultLRUSize = 1000

// LRUStore bounds memory with an expirable LRU; entries leave on TTL or when capacity is reached.
type LRUStore struct {
	cache *expirable.LRU[string, *model.AnalysisPayload]
}

func NewLRUStore(size int, ttl time.Duration) *LRUStore {
	if size <= 0 {
		size = defaultLRUSize
	}
	return &LRUStore{
		cache: expirable.NewLRU[string, *model.AnalysisPayload](size, nil, ttl),
	}
}

func (s *LRUStore) Get(ctx context.Context, key string) (*model.AnalysisPayload, bool) {
	cached, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	return cached.Clone(), true
}

func (s *LRUStore) Put(ctx context.Context, key string, payload *model.AnalysisPayload) {
	if payload == nil {
		return
	}
	s.cache.Add(key, payload.Clone())
}

func (s *LRUStore) Len() int {
	return s.cache.Len()
}
