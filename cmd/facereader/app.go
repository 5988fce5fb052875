package main

import (
	"fmt"

	"github.com/rapleeee/face-reading-withAI/internal/ai"
	"github.com/rapleeee/face-reading-withAI/internal/analysiscache"
	"github.com/rapleeee/face-reading-withAI/internal/classifier"
	"github.com/rapleeee/face-reading-withAI/internal/config"
	"github.com/rapleeee/face-reading-withAI/internal/job"
	"github.com/rapleeee/face-reading-withAI/internal/service"
)

type app struct {
	service *service.AnalysisService
	cache   analysiscache.Store
}

func (a *app) cacheSweeper() job.Sweeper {
	if sw, ok := a.cache.(analysiscache.Sweeper); ok {
		return sw
	}
	return nil
}

func buildApp(cfg *config.Config) (*app, error) {
	cache, err := analysiscache.New(analysiscache.Config{
		Type: cfg.Cache.Type,
		TTL:  cfg.Cache.TTL,
		Size: cfg.Cache.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	narrator, err := buildNarrator(cfg.AI)
	if err != nil {
		return nil, err
	}
	svc := service.NewAnalysisService(service.AnalysisDeps{
		Expression: classifier.NewExpressionClassifier(classifier.Config{
			Token:   cfg.Classifier.Token,
			URL:     cfg.Classifier.ExpressionURL,
			Timeout: cfg.Classifier.Timeout,
		}),
		Age: classifier.NewAgeClassifier(classifier.Config{
			Token:   cfg.Classifier.Token,
			URL:     cfg.Classifier.AgeURL,
			Timeout: cfg.Classifier.Timeout,
		}),
		Narrator:   narrator,
		Cache:      cache,
		Configured: cfg.Configured(),
	})
	return &app{service: svc, cache: cache}, nil
}

func buildNarrator(cfg config.AIConfig) (*ai.Narrator, error) {
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		provider, err := ai.NewProvider(p.Name, p.Data)
		if err != nil {
			return nil, fmt.Errorf("init ai provider %s: %w", p.Name, err)
		}
		gen := ai.NewGenerator(provider, p.Model)
		entries = append(entries, ai.GeneratorEntry{Name: gen.Name(), Generator: gen})
	}
	return ai.NewNarrator(ai.NewGroupGenerator(entries), ai.NarratorConfig{
		Timeout:     cfg.Timeout,
		MaxTokens:   cfg.MaxTokens,
		Temperature: &cfg.Temperature,
		TopP:        cfg.TopP,
		Language:    cfg.Language,
	}), nil
}
