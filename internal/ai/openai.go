package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	errorPreviewBytes    = 240
)

type openAIConfig struct {
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
	JSONMode bool   `json:"json_mode"`
	Referer  string `json:"http_referer"`
	XTitle   string `json:"x_title"`
}

type openAIProvider struct {
	apiKey   string
	baseURL  string
	jsonMode bool
	referer  string
	xTitle   string
	client   *http.Client
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIChatMsg `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	TopP           float64         `json:"top_p,omitempty"`
	Stream         bool            `json:"stream"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIChatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Generate(ctx context.Context, model string, req *ChatRequest) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/chat/completions"
	reqBody := openAIChatRequest{
		Model: model,
		Messages: []openAIChatMsg{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stream:      false,
	}
	if p.jsonMode {
		reqBody.ResponseFormat = &openAIFormat{Type: "json_object"}
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.xTitle != "" {
		httpReq.Header.Set("X-Title", p.xTitle)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return "", fmt.Errorf("openai request failed: %s: %s", resp.Status, upstreamErrorMessage(body))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// upstreamErrorMessage extracts error.message from a JSON error envelope, falling back to a
// bounded preview of the raw body.
func upstreamErrorMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}
	preview := strings.TrimSpace(string(body))
	if preview == "" {
		return "empty response body"
	}
	if len(preview) > errorPreviewBytes {
		preview = preview[:errorPreviewBytes] + "..."
	}
	return preview
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	provider := &openAIProvider{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  baseURL,
		jsonMode: cfg.JSONMode,
		referer:  strings.TrimSpace(cfg.Referer),
		xTitle:   strings.TrimSpace(cfg.XTitle),
		client:   http.DefaultClient,
	}
	return provider, nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
