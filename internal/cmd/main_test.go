package cmd_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DMarby/bmpfilter/internal/cmd"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWaitForInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.EqualError(t, cmd.WaitForInterrupt(ctx), "canceled")
}

func TestServe(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan struct{})
	go func() {
		cmd.Serve(ctx, log, server)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
