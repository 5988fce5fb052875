package analysiscache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

func samplePayload() *model.AnalysisPayload {
	return &model.AnalysisPayload{
		Expression: model.ExpressionInsight{Label: "happy", Confidence: 0.9},
		Career:     []model.ManifestingPoint{{Title: "a", Description: "b", Indicator: model.IndicatorStrength}},
		Meta:       model.Meta{Source: model.SourceAI},
	}
}

func TestMemoryStore_TTLOnRead(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	_, ok := s.Get(ctx, "k")
	require.False(t, ok)

	s.Put(ctx, "k", samplePayload())
	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, samplePayload(), got)

	now = now.Add(61 * time.Second)
	_, ok = s.Get(ctx, "k")
	require.False(t, ok)
	require.Equal(t, 1, s.Len())

	require.Equal(t, 1, s.Sweep(now))
	require.Equal(t, 0, s.Len())
}

func TestMemoryStore_ReturnsIsolatedCopies(t *testing.T) {
	s := NewMemoryStore(time.Minute, nil)
	ctx := context.Background()
	p := samplePayload()
	s.Put(ctx, "k", p)
	p.Career[0].Title = "mutated"

	got, _ := s.Get(ctx, "k")
	got.Meta.Cached = true
	got.Career[0].Title = "changed"

	again, _ := s.Get(ctx, "k")
	require.False(t, again.Meta.Cached)
	require.Equal(t, "a", again.Career[0].Title)
}

func TestLRUStore(t *testing.T) {
	s := NewLRUStore(1, time.Minute)
	ctx := context.Background()
	s.Put(ctx, "a", samplePayload())
	s.Put(ctx, "b", samplePayload())
	_, ok := s.Get(ctx, "a")
	require.False(t, ok)
	got, ok := s.Get(ctx, "b")
	require.True(t, ok)
	require.Equal(t, "happy", got.Expression.Label)
	require.Equal(t, 1, s.Len())
}

func TestNew(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = New(Config{Type: "LRU", Size: 5})
	require.NoError(t, err)
	require.IsType(t, &LRUStore{}, s)

	_, err = New(Config{Type: "redis"})
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Key(nil))
	require.Len(t, Key([]byte("img")), 64)
}
