package http

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/infrastructure/database/dbtest"
	"github.com/Conte777/GateFlow/internal/infrastructure/http/server"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
	"github.com/Conte777/GateFlow/pkg/clock"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*server.Server, *prometheus.Registry, func()) {
	t.Helper()

	db := dbtest.Open(t)
	handler := NewHealthHandler(HealthHandlerParams{
		DB:     db,
		Kafka:  &config.KafkaConfig{},
		Clock:  clock.NewFake(now),
		Logger: zerolog.Nop(),
	})

	reg := prometheus.NewRegistry()
	srv := server.NewServer("gate-service", "0", zerolog.Nop())
	srv.RegisterMetrics(reg)
	registerRoutes(srv, handler)

	closeDB := func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	}

	return srv, reg, closeDB
}

func serve(t *testing.T, srv *server.Server, method, path string) *fasthttp.Response {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	httpServer := &fasthttp.Server{Handler: srv.Router.Handler}
	go func() { _ = httpServer.Serve(ln) }()
	t.Cleanup(func() { _ = httpServer.Shutdown() })

	client := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(method)
	req.SetRequestURI("http://gate.test" + path)

	res := &fasthttp.Response{}
	require.NoError(t, client.DoTimeout(req, res, 5*time.Second))
	return res
}

func TestHealth_Healthy(t *testing.T) {
	srv, _, _ := newTestServer(t)

	res := serve(t, srv, fasthttp.MethodGet, "/health")
	require.Equal(t, fasthttp.StatusOK, res.StatusCode())

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(res.Body(), &resp))
	assert.Equal(t, HealthStatusHealthy, resp.Status)
	assert.True(t, resp.Timestamp.Equal(now))
	require.Len(t, resp.Components, 2)
	assert.Equal(t, "database", resp.Components[0].Name)
	assert.Equal(t, "disabled", resp.Components[1].Message)
}

func TestHealth_DatabaseDown(t *testing.T) {
	srv, _, closeDB := newTestServer(t)
	closeDB()

	res := serve(t, srv, fasthttp.MethodGet, "/health")
	require.Equal(t, fasthttp.StatusServiceUnavailable, res.StatusCode())

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(res.Body(), &resp))
	assert.Equal(t, HealthStatusUnhealthy, resp.Status)
	assert.False(t, resp.Components[0].Healthy)
}

func TestHealth_UnservedRequestCtx(t *testing.T) {
	handler := NewHealthHandler(HealthHandlerParams{
		DB:     dbtest.Open(t),
		Kafka:  &config.KafkaConfig{},
		Clock:  clock.NewFake(now),
		Logger: zerolog.Nop(),
	})

	var ctx fasthttp.RequestCtx
	require.NotPanics(t, func() { handler.Handle(&ctx) })
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, reg, _ := newTestServer(t)
	m := metrics.NewMetrics(reg)
	m.RecordGateDecision(true)

	res := serve(t, srv, fasthttp.MethodGet, "/metrics")
	require.Equal(t, fasthttp.StatusOK, res.StatusCode())
	assert.Contains(t, string(res.Body()), "gate_decisions_total")
}

func TestNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	res := serve(t, srv, fasthttp.MethodGet, "/nope")
	assert.Equal(t, fasthttp.StatusNotFound, res.StatusCode())
	assert.Contains(t, string(res.Body()), `"success":false`)
}

func TestDetermineOverallStatus(t *testing.T) {
	assert.Equal(t, HealthStatusDegraded, determineOverallStatus([]ComponentHealth{
		{Name: "database", Healthy: true, Critical: true},
		{Name: "kafka", Healthy: false},
	}))
	assert.Equal(t, HealthStatusUnhealthy, determineOverallStatus([]ComponentHealth{
		{Name: "database", Healthy: false, Critical: true},
	}))
}
