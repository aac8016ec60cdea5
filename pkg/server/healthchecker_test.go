package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestClusterHealthChecker(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		hc := NewClusterHealthChecker(pingerFunc(func(ctx context.Context) error { return nil }), time.Second)
		assert.True(t, hc.Healthy(context.Background()))
	})

	t.Run("ping fails", func(t *testing.T) {
		hc := NewClusterHealthChecker(pingerFunc(func(ctx context.Context) error { return errors.New("down") }), time.Second)
		assert.False(t, hc.Healthy(context.Background()))
	})

	t.Run("ping is bounded by the timeout", func(t *testing.T) {
		hc := NewClusterHealthChecker(pingerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}), 10*time.Millisecond)
		assert.False(t, hc.Healthy(context.Background()))
	})
}
