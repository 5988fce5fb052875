package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const sampleDraft = `{
  "energy": "Calm",
  "personality": "Steady",
  "career": [{"title": "Builder", "description": "Likes building", "indicator": "strength"}],
  "future": [{"title": "Growth", "description": "Keeps growing"}],
  "recommendation": {"primary": "stem", "alternatives": [{"code": "health", "note": "care"}]},
  "confidenceModifier": 0.1
}`

func newOpenAI(t *testing.T, baseURL string) IProvider {
	t.Helper()
	p, err := NewProvider("openai", map[string]interface{}{"api_key": "key", "base_url": baseURL})
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_SendsChatRequest(t *testing.T) {
	var got openAIChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  hello  "}}]}`))
	}))
	defer srv.Close()

	out, err := newOpenAI(t, srv.URL).Generate(context.Background(), "gpt-test", &ChatRequest{
		System: "sys", User: "usr", MaxTokens: 100, Temperature: 0.7, TopP: 0.9,
	})
	require.NoError(t, err)
	require.Equal(t, "hello", out)
	require.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "usr", got.Messages[1].Content)
	require.Equal(t, 100, got.MaxTokens)
	require.Equal(t, 0.9, got.TopP)
}

func TestOpenAIProvider_ErrorMessages(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"envelope":     {`{"error":{"message":"quota exceeded","type":"billing"}}`, "quota exceeded"},
		"string":       {`{"error":"bad key"}`, "bad key"},
		"plain text":   {`upstream exploded`, "upstream exploded"},
		"long preview": {strings.Repeat("x", 500), strings.Repeat("x", errorPreviewBytes) + "..."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			_, err := newOpenAI(t, srv.URL).Generate(context.Background(), "m", &ChatRequest{})
			require.Error(t, err)
			require.Contains(t, err.Error(), "429")
			require.True(t, strings.HasSuffix(err.Error(), tc.want))
		})
	}
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	p, err := NewProvider("openai", map[string]interface{}{})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), "m", &ChatRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("nope", map[string]interface{}{})
	require.Error(t, err)
	_, err = NewProvider("", nil)
	require.Error(t, err)

	p, err := NewProvider("OpenRouter", map[string]interface{}{"api_key": "k"})
	require.NoError(t, err)
	require.Equal(t, "openrouter", p.Name())
}

func TestParseDraft(t *testing.T) {
	for _, raw := range []string{
		sampleDraft,
		"```json\n" + sampleDraft + "\n```",
		"```" + sampleDraft + "```",
		"```\n" + sampleDraft + "\n```",
		"``` json \n" + sampleDraft + "\n```",
		"```{\"energy\": \"Calm\",\n\"career\": [{\"title\": \"a\", \"description\": \"b\"}],\n\"recommendation\": {\"primary\": \"stem\"},\n\"confidenceModifier\": 0.1}\n```",
		"Sure! Here it is:\n" + sampleDraft,
	} {
		draft, err := parseDraft(raw)
		require.NoError(t, err)
		require.Equal(t, "Calm", draft.Energy)
		require.Equal(t, "stem", draft.Recommendation.Primary)
		require.Equal(t, 0.1, draft.ConfidenceModifier)
	}
}

func TestParseDraft_Rejects(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"energy": "x"}`, `{"career": [}`} {
		_, err := parseDraft(raw)
		require.Error(t, err, raw)
	}
}

type stubGenerator struct {
	name  string
	out   string
	err   error
	calls int
	last  *ChatRequest
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}

func TestNarrator_Generate(t *testing.T) {
	gen := &stubGenerator{name: "stub", out: sampleDraft}
	n := NewNarrator(gen, NarratorConfig{})
	lo, hi := 25, 32
	draft, err := n.Generate(context.Background(), NarrativeInput{
		Expression: model.ExpressionInsight{Label: "happy", Confidence: 0.81, Narrative: "bright"},
		Age:        &model.AgeInsight{Range: model.AgeRange{Min: &lo, Max: &hi}, Narrative: "early career"},
		ImageHash:  strings.Repeat("a", 64),
	})
	require.NoError(t, err)
	require.Equal(t, "Steady", draft.Personality)
	require.Equal(t, defaultMaxTokens, gen.last.MaxTokens)
	require.Contains(t, gen.last.User, "happy (confidence 81%)")
	require.Contains(t, gen.last.User, "25-32 years")
	require.Contains(t, gen.last.User, "business, social, creative")
	require.Contains(t, gen.last.User, strings.Repeat("a", imageHashPreviewLen)+"\n")
	require.NotContains(t, gen.last.User, strings.Repeat("a", imageHashPreviewLen+1))
	require.Contains(t, gen.last.System, "stem, health, business, social, creative")
}

func TestNarrator_PropagatesErrors(t *testing.T) {
	n := NewNarrator(&stubGenerator{err: errors.New("down")}, NarratorConfig{})
	_, err := n.Generate(context.Background(), NarrativeInput{})
	require.Error(t, err)

	n = NewNarrator(&stubGenerator{out: "I cannot help"}, NarratorConfig{})
	_, err = n.Generate(context.Background(), NarrativeInput{})
	require.Error(t, err)

	var nilNarrator *Narrator
	_, err = nilNarrator.Generate(context.Background(), NarrativeInput{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGroupGenerator_FallsThrough(t *testing.T) {
	first := &stubGenerator{name: "a", err: errors.New("fail")}
	second := &stubGenerator{name: "b", out: "ok"}
	g := NewGroupGenerator([]GeneratorEntry{{Name: "a", Generator: first}, {Name: "b", Generator: second}})
	out, err := g.Generate(context.Background(), &ChatRequest{})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Equal(t, "a|b", g.Name())
}

func TestStripCodeFences(t *testing.T) {
	require.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	require.Equal(t, "{\"a\":1,\n\"b\":2}", stripCodeFences("```{\"a\":1,\n\"b\":2}\n```"))
	require.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}

func TestNarrator_ExplicitZeroTemperature(t *testing.T) {
	gen := &stubGenerator{out: sampleDraft}
	zero := 0.0
	_, err := NewNarrator(gen, NarratorConfig{Temperature: &zero}).Generate(context.Background(), NarrativeInput{})
	require.NoError(t, err)
	require.Equal(t, 0.0, gen.last.Temperature)

	_, err = NewNarrator(gen, NarratorConfig{}).Generate(context.Background(), NarrativeInput{})
	require.NoError(t, err)
	require.Equal(t, defaultTemperature, gen.last.Temperature)
}

type blockingGenerator struct {
	calls int
}

func (b *blockingGenerator) Name() string { return "slow" }

func (b *blockingGenerator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	b.calls++
	<-ctx.Done()
	return "", ctx.Err()
}

type ctxCheckingGenerator struct {
	out    string
	ctxErr error
}

func (g *ctxCheckingGenerator) Name() string { return "fast" }

func (g *ctxCheckingGenerator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	g.ctxErr = ctx.Err()
	if g.ctxErr != nil {
		return "", g.ctxErr
	}
	return g.out, nil
}

func TestNarrator_TimeoutAppliesPerProviderAttempt(t *testing.T) {
	slow := &blockingGenerator{}
	fast := &ctxCheckingGenerator{out: sampleDraft}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "slow", Generator: slow},
		{Name: "fast", Generator: fast},
	})
	n := NewNarrator(group, NarratorConfig{Timeout: 50 * time.Millisecond})

	draft, err := n.Generate(context.Background(), NarrativeInput{})
	require.NoError(t, err)
	require.Equal(t, "Calm", draft.Energy)
	require.Equal(t, 1, slow.calls)
	require.NoError(t, fast.ctxErr)
	require.Equal(t, "slow|fast", n.Name())
}
