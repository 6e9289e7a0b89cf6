package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewWithoutAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", testLogger()))
}

// A nil cache must behave as a transparent miss so callers never branch on it.
func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var out string
	assert.False(t, c.Get(ctx, "key", &out))
	assert.NotPanics(t, func() {
		c.Set(ctx, "key", "value", time.Minute)
		c.Invalidate(ctx, "key")
		c.Close()
	})
}
