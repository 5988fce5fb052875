package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	appErr "github.com/rapleeee/face-reading-withAI/internal/pkg/errors"
)

const defaultImageMIME = "application/octet-stream"

// decodedImage is the binary form of a "data:<mime>;base64,<payload>" string.
type decodedImage struct {
	Bytes []byte
	MIME  string
}

func decodeDataURL(raw string) (*decodedImage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("image is required: %w", appErr.ErrInvalid)
	}
	header, payload, ok := strings.Cut(raw, ",")
	if !ok || !isBase64DataHeader(header) {
		return nil, fmt.Errorf("image is not a base64 data url: %w", appErr.ErrInvalid)
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("image payload is empty: %w", appErr.ErrInvalid)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %v: %w", err, appErr.ErrInvalid)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image payload is empty: %w", appErr.ErrInvalid)
	}
	return &decodedImage{Bytes: data, MIME: dataURLMIME(header)}, nil
}

// isBase64DataHeader accepts "data:[<mime>][;param]*;base64".
func isBase64DataHeader(header string) bool {
	header = strings.ToLower(strings.TrimSpace(header))
	return strings.HasPrefix(header, "data:") && strings.HasSuffix(header, ";base64")
}

func dataURLMIME(header string) string {
	header = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(header)), "data:")
	mime, _, _ := strings.Cut(header, ";")
	mime = strings.TrimSpace(mime)
	if mime == "" || !strings.Contains(mime, "/") {
		return defaultImageMIME
	}
	return mime
}
