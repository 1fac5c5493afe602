package httpserver

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	srv := New(":0", http.NewServeMux())
	require.Equal(t, defaultReadHeaderTimeout, srv.ReadHeaderTimeout)
	require.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
}

func TestWithShutdownTimeout(t *testing.T) {
	srv := New(":0", http.NewServeMux(), WithShutdownTimeout(2*time.Second))
	require.Equal(t, 2*time.Second, srv.shutdownTimeout)

	// Non-positive values keep the default instead of disabling the bound.
	srv = New(":0", http.NewServeMux(), WithShutdownTimeout(0))
	require.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
}

func TestDrainStopsServing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(ln.Addr().String(), http.NewServeMux(), WithShutdownTimeout(time.Second))
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	require.NoError(t, srv.Drain())

	select {
	case err := <-served:
		require.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after drain")
	}
}
