package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"music-server/internal/config"
)

func TestServerStartAndStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.ServerConfig{
		Port:        "0", // random port
		APIPort:     "0",
		ReadTimeout: 5 * time.Second,
	}
	srv := NewAPIServer(cfg, NewSongHandlers(nil, logger), nil, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Give the listener a moment to come up.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Start() returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop in time")
	}
}

func TestServerAddr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewAPIServer(config.ServerConfig{Port: "3000", APIPort: "5501"}, NewSongHandlers(nil, logger), nil, logger)
	if srv.Addr() != ":5501" {
		t.Errorf("Addr() = %q, want :5501", srv.Addr())
	}
}
