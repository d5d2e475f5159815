package logger_test

import (
	"strings"
	"testing"

	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/retroenv/retrogolib/assert"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	var sb strings.Builder

	logger.Write(&sb)
	assert.Equal(t, "", sb.String())

	logger.Log("test", "this is a test")
	logger.Write(&sb)
	assert.Equal(t, "test: this is a test\n", sb.String())

	sb.Reset()
	logger.Logf("test2", "this is test %d", 2)
	logger.Write(&sb)
	assert.Equal(t, "test: this is a test\ntest2: this is test 2\n", sb.String())

	// asking for too many entries in a Tail() should be okay
	sb.Reset()
	logger.Tail(&sb, 100)
	assert.Equal(t, "test: this is a test\ntest2: this is test 2\n", sb.String())

	sb.Reset()
	logger.Tail(&sb, 1)
	assert.Equal(t, "test2: this is test 2\n", sb.String())

	sb.Reset()
	logger.Tail(&sb, 0)
	assert.Equal(t, "", sb.String())
}

func TestRepeatedEntries(t *testing.T) {
	logger.Clear()
	for i := 0; i < 3; i++ {
		logger.Log("chip8", "waiting for key")
	}
	logger.Log("chip8", "key pressed")

	entries := logger.Entries()
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, 2, entries[0].Repeated)
	assert.Equal(t, "chip8: waiting for key (repeat x3)\n", entries[0].String())
}

func TestEcho(t *testing.T) {
	logger.Clear()
	var sb strings.Builder
	logger.SetEcho(&sb)
	defer logger.SetEcho(nil)

	logger.Log("echo", "one")
	logger.Log("echo", "one")
	logger.Log("echo", "two")
	assert.Equal(t, "echo: one\necho: two\n", sb.String())
}

func TestCapacity(t *testing.T) {
	logger.Clear()
	for i := 0; i < 300; i++ {
		logger.Logf("cap", "entry %d", i)
	}
	entries := logger.Entries()
	assert.Equal(t, 256, len(entries))
	assert.Equal(t, "entry 299", entries[len(entries)-1].Detail)
	assert.Equal(t, "entry 44", entries[0].Detail)
}
