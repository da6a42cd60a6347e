package server

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenmarket/internal/logging"
)

func TestRun_StopsOnCancel(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, logging.Options{Service: "test"})
	srv := New("127.0.0.1:0", http.NotFoundHandler())

	var taskStopped atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, srv, logger, func(ctx context.Context) {
			<-ctx.Done()
			taskStopped.Store(true)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, taskStopped.Load())
}

func TestRun_ListenFailure(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, logging.Options{Service: "test"})
	srv := New("256.0.0.1:bad", http.NotFoundHandler())

	err := Run(context.Background(), srv, logger)

	assert.Error(t, err)
}
