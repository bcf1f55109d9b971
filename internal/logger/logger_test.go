package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendsToMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "viewer.txt")
	l := New(path)

	l.Log("viewport opened")
	l.Logf("loading %s", "cat.png")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "viewport opened")
	assert.Contains(t, lines[1], "loading cat.png")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "viewport opened")
	assert.Contains(t, string(data), "loading cat.png")
}

func TestLinesReturnsCopy(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "viewer.txt"))
	l.Log("one")

	lines := l.Lines()
	lines[0] = "mutated"
	assert.Contains(t, l.Lines()[0], "one")
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	l.Log("dropped")
	l.Logf("dropped %d", 1)
	assert.Nil(t, l.Lines())
}
