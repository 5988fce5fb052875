package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type GeneratorEntry struct {
	Name      string
	Generator IGenerator
}

type groupGenerator struct {
	items []GeneratorEntry
}

// NewGroupGenerator tries each generator once, in order, until one succeeds.
func NewGroupGenerator(items []GeneratorEntry) IGenerator {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return items[0].Generator
	}
	return &groupGenerator{items: items}
}

func (g *groupGenerator) Name() string {
	names := make([]string, 0, len(g.items))
	for _, item := range g.items {
		if item.Name == "" {
			continue
		}
		names = append(names, item.Name)
	}
	return strings.Join(names, "|")
}

func (g *groupGenerator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	var lastErr error
	for i, item := range g.items {
		if item.Generator == nil {
			continue
		}
		res, err := item.Generator.Generate(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err
		logutil.GetLogger(ctx).Warn("generator failed", zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
	}
	if lastErr == nil {
		return "", fmt.Errorf("generator not configured")
	}
	return "", lastErr
}

type timeoutGenerator struct {
	IGenerator
	timeout time.Duration
}

func (g *timeoutGenerator) Generate(ctx context.Context, req *ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.IGenerator.Generate(ctx, req)
}

// withAttemptTimeout bounds every provider attempt on its own, so a hung provider in a group
// does not consume the budget of the ones after it.
func withAttemptTimeout(gen IGenerator, timeout time.Duration) IGenerator {
	group, ok := gen.(*groupGenerator)
	if !ok {
		return &timeoutGenerator{IGenerator: gen, timeout: timeout}
	}
	items := make([]GeneratorEntry, len(group.items))
	for i, item := range group.items {
		items[i] = item
		if item.Generator != nil {
			items[i].Generator = &timeoutGenerator{IGenerator: item.Generator, timeout: timeout}
		}
	}
	return &groupGenerator{items: items}
}
