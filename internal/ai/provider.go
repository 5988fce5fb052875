package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnavailable = errors.New("ai provider unavailable")

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

type IProvider interface {
	Name() string
	Generate(ctx context.Context, model string, req *ChatRequest) (string, error)
}

type IGenerator interface {
	Name() string
	Generate(ctx context.Context, req *ChatRequest) (string, error)
}

type generator struct {
	provider IProvider
	model    string
}

func NewGenerator(p IProvider, model string) IGenerator {
	return &generator{provider: p, model: model}
}

func (g *generator) Name() string {
	if g.model == "" {
		return g.provider.Name()
	}
	return g.provider.Name() + ":" + g.model
}

func (g *generator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	return g.provider.Generate(ctx, g.model, req)
}

type ProviderFactory func(args interface{}) (IProvider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (IProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
