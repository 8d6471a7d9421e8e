package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(file, "debug")
	require.NoError(t, err)

	log.Info("booking id=%d created", 42)
	log.Debug("debug line")
	_ = log.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking id=42 created")
	assert.Contains(t, string(data), "debug line")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNopDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Info("x=%d", 1)
	log.Warn("y")
	log.Error("z")
	assert.NoError(t, log.Close())
}
