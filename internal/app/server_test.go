//go:build !integration

package app

import (
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler(), "8080")

	require.NotNil(t, server)
	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, readTimeout, server.httpServer.ReadTimeout)
	assert.Equal(t, writeTimeout, server.httpServer.WriteTimeout)
	assert.Equal(t, idleTimeout, server.httpServer.IdleTimeout)
	assert.Equal(t, shutdownTimeout, server.shutdownTimeout)
}

func TestServer_Shutdown(t *testing.T) {
	server := NewServer(okHandler(), "0")

	// Shutdown on a server that never started returns cleanly.
	assert.NoError(t, server.Shutdown())
}

func TestServer_Run_StopsOnSignal(t *testing.T) {
	server := NewServer(okHandler(), "0")

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	// Give the listener a moment to come up before signalling.
	time.Sleep(100 * time.Millisecond)
	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down after SIGTERM")
	}
}

func TestServer_Run_ListenerError(t *testing.T) {
	server := NewServer(okHandler(), "not-a-port")

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a listener error for an invalid port")
	}
}
