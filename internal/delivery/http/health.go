// Package http contains the health and metrics HTTP delivery
package http

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/pkg/clock"
	"github.com/Conte777/GateFlow/pkg/httputil"
)

const pingTimeout = 2 * time.Second

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Critical bool   `json:"critical"`
	Message  string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	db     *gorm.DB
	kafka  *config.KafkaConfig
	clock  clock.Clock
	logger zerolog.Logger
}

// HealthHandlerParams defines parameters for HealthHandler
type HealthHandlerParams struct {
	fx.In

	DB     *gorm.DB
	Kafka  *config.KafkaConfig
	Clock  clock.Clock
	Logger zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		db:     params.DB,
		kafka:  params.Kafka,
		clock:  params.Clock,
		logger: params.Logger.With().Str("component", "health").Logger(),
	}
}

// Handle handles the health check request for fasthttp
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	components := []ComponentHealth{h.checkDatabase(), h.checkKafka()}
	status := determineOverallStatus(components)

	response := HealthResponse{
		Status:     status,
		Timestamp:  h.clock.Now(),
		Components: components,
	}

	logEvent := h.logger.Debug()
	if status != HealthStatusHealthy {
		logEvent = h.logger.Warn()
	}
	logEvent.Str("status", string(status)).Msg("Health check")

	httputil.WriteHealthResponse(ctx, response, status != HealthStatusUnhealthy)
}

// checkDatabase pings with its own deadline; a RequestCtx is only cancelled on server shutdown
func (h *HealthHandler) checkDatabase() ComponentHealth {
	component := ComponentHealth{Name: "database", Critical: true}

	sqlDB, err := h.db.DB()
	if err != nil {
		component.Message = err.Error()
		return component
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		component.Message = err.Error()
		return component
	}

	component.Healthy = true
	return component
}

func (h *HealthHandler) checkKafka() ComponentHealth {
	if !h.kafka.Enabled {
		return ComponentHealth{Name: "kafka", Healthy: true, Message: "disabled"}
	}
	return ComponentHealth{Name: "kafka", Healthy: true, Message: "enabled"}
}

func determineOverallStatus(components []ComponentHealth) HealthStatus {
	status := HealthStatusHealthy
	for _, c := range components {
		if c.Healthy {
			continue
		}
		if c.Critical {
			return HealthStatusUnhealthy
		}
		status = HealthStatusDegraded
	}
	return status
}
