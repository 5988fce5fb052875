package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBodyLimit(t *testing.T) {
	require.Equal(t, "0B", formatBodyLimit(0))
	require.Equal(t, "64B", formatBodyLimit(64))
	require.Equal(t, "1KB", formatBodyLimit(1024))
	require.Equal(t, "512KB", formatBodyLimit(512*1024))
	require.Equal(t, "8MB", formatBodyLimit(8<<20))
}
