package classifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 20
	errPreviewBytes  = 240
)

type Config struct {
	Token   string
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

type endpoint struct {
	token   string
	url     string
	timeout time.Duration
	client  *http.Client
}

func newEndpoint(cfg Config) endpoint {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return endpoint{
		token:   strings.TrimSpace(cfg.Token),
		url:     strings.TrimSpace(cfg.URL),
		timeout: timeout,
		client:  client,
	}
}

// post sends the raw image bytes and returns the response body of a 2xx reply.
func (e endpoint) post(ctx context.Context, image []byte, mime string) ([]byte, error) {
	if e.url == "" {
		return nil, fmt.Errorf("classifier url not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	req.Header.Set("Content-Type", mime)
	req.Header.Set("Accept", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		preview := strings.TrimSpace(string(body))
		if len(preview) > errPreviewBytes {
			preview = preview[:errPreviewBytes]
		}
		return nil, fmt.Errorf("classifier request failed: %s: %s", resp.Status, preview)
	}
	return body, nil
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
