package analysiscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const DefaultTTL = 10 * time.Minute

// Store keeps analysis results keyed by the hash of the submitted image.
type Store interface {
	Get(ctx context.Context, key string) (*model.AnalysisPayload, bool)
	Put(ctx context.Context, key string, payload *model.AnalysisPayload)
}

// Sweeper is implemented by stores that can drop expired entries on demand.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Key hashes the decoded image bytes.
func Key(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

type Config struct {
	Type string
	TTL  time.Duration
	Size int
}

func New(cfg Config) (Store, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "memory":
		return NewMemoryStore(ttl, time.Now), nil
	case "lru":
		return NewLRUStore(cfg.Size, ttl), nil
	}
	return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
}

type entry struct {
	storedAt time.Time
	payload  *model.AnalysisPayload
}

// MemoryStore is a map with TTL checked on read. Entries are only replaced by a later Put for the
// same key or removed by Sweep; without a sweep the map grows for the life of the process.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*model.AnalysisPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.storedAt) > s.ttl {
		return nil, false
	}
	return e.payload.Clone(), true
}

func (s *MemoryStore) Put(ctx context.Context, key string, payload *model.AnalysisPayload) {
	if payload == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{storedAt: s.now(), payload: payload.Clone()}
}

func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
