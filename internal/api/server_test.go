package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/MJE43/roulette-neighbors/internal/config"
)

func TestServerStartShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.Default()
	cfg.Server.Port = 0
	server := NewServer(cfg, zap.NewNop())

	addr, err := server.Start()
	require.NoError(t, err)

	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	defer transport.CloseIdleConnections()

	resp, err := client.Post("http://"+addr.String()+"/api/v1/neighbors", "application/json",
		strings.NewReader(`{"input": "0 1"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"0":[26,0,32]`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	_, err = client.Get("http://" + addr.String() + "/health/live")
	assert.Error(t, err)
}

func TestShutdownWithoutStart(t *testing.T) {
	server := NewServer(config.Default(), nil)
	assert.NoError(t, server.Shutdown(context.Background()))
}
