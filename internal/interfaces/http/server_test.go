package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/config"
)

func TestServer_RunUntilCancelled(t *testing.T) {
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}
	srv := NewServer(cfg, NewRouter(testRouterConfig(t)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/livez", srv.Addr()))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	cfg := config.ServerConfig{Host: "256.0.0.1", Port: 80}
	srv := NewServer(cfg, http.NotFoundHandler(), nil)
	assert.Error(t, srv.Start())
	assert.Equal(t, "256.0.0.1:80", srv.Addr())
}

//Personal.AI order the ending
