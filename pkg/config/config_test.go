package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToDevelopment(t *testing.T) {
	t.Setenv(environmentENV, "")

	cfg, err := New()
	require.NoError(t, err)

	assert.True(t, cfg.DatabaseDebug)
	assert.Equal(t, "./tmp/data.sqlite", cfg.DatabaseFilePath)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNewTestEnvironment(t *testing.T) {
	t.Setenv(environmentENV, "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, 0, cfg.ServerPort)
	assert.False(t, cfg.DatabaseDebug)
}
