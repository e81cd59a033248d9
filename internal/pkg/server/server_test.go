package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulServer_Run(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1", 0, time.Second)

	var order []string
	gs.OnShutdown(func(context.Context) error { order = append(order, "broker"); return nil })
	gs.OnShutdown(func(context.Context) error { order = append(order, "consumers"); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", e.ListenerAddr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"consumers", "broker"}, order)
}

func TestGracefulServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	e := echo.New()
	e.HideBanner = true
	gs := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1", port, time.Second)

	cleaned := false
	gs.OnShutdown(func(context.Context) error { cleaned = true; return nil })

	err = gs.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, cleaned)
}

func TestShutdownManager(t *testing.T) {
	sm := NewShutdownManager(logger.NewNopLogger())

	first := errors.New("first failure")
	calls := 0
	sm.Register(func(context.Context) error { calls++; return errors.New("second failure") })
	sm.Register(func(context.Context) error { calls++; return first })
	sm.Register(func(context.Context) error { calls++; return nil })

	err := sm.Shutdown(context.Background())
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, first)
}
