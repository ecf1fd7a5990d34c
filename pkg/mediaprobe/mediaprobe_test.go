package mediaprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00"},
		{9 * time.Second, "00:09"},
		{125 * time.Second, "02:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "01:00:00"},
		{time.Hour + 2*time.Minute + 5*time.Second, "01:02:05"},
		{25*time.Hour + 30*time.Minute, "25:30:00"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.duration))
	}
}

func TestDurationMissingFile(t *testing.T) {
	t.Parallel()

	p := New()
	got := p.Duration(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"))
	assert.Equal(t, ZeroDuration, got)
}

func TestDurationGarbageFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "garbage.mp4")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an mp4"), 0644))

	p := New()
	assert.Equal(t, ZeroDuration, p.Duration(context.Background(), path))
}

func TestDurationNonMP4Container(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.mkv")
	require.NoError(t, os.WriteFile(path, []byte{0x1a, 0x45, 0xdf, 0xa3, 0x00, 0x00}, 0644))

	p := New()
	assert.Equal(t, ZeroDuration, p.Duration(context.Background(), path))
}
