package handler

import "strconv"

// formatBodyLimit renders a byte limit for error messages, e.g. "512B", "64KB", "8MB".
func formatBodyLimit(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case bytes <= 0:
		return "0B"
	case bytes < kb:
		return strconv.FormatInt(bytes, 10) + "B"
	case bytes < mb:
		return strconv.FormatInt(bytes/kb, 10) + "KB"
	}
	return strconv.FormatInt(bytes/mb, 10) + "MB"
}
