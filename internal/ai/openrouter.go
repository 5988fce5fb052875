package ai

import (
	"net/http"
	"strings"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openrouterProvider speaks the openai chat protocol; only the default endpoint and the
// attribution headers differ.
type openrouterProvider struct {
	*openAIProvider
}

func (p *openrouterProvider) Name() string {
	return "openrouter"
}

func createOpenRouterFactory(args interface{}) (IProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &openrouterProvider{&openAIProvider{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  baseURL,
		jsonMode: cfg.JSONMode,
		referer:  strings.TrimSpace(cfg.Referer),
		xTitle:   strings.TrimSpace(cfg.XTitle),
		client:   http.DefaultClient,
	}}, nil
}

func init() {
	Register("openrouter", createOpenRouterFactory)
}
