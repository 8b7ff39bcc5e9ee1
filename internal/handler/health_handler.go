package handler

import (
	"net/http"
	"time"

	"github.com/olumbah1/alx-project-nexus/pkg/database"
	"github.com/olumbah1/alx-project-nexus/pkg/logger"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
	log   *logger.Logger
}

// NewHealthHandler creates a new health handler. redisClient may be nil.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, log: log}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Error("database health check failed")
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			// Cache being down degrades reads, it does not break them
			h.log.WithError(err).Warn("redis health check failed")
			checks["redis"] = "unhealthy"
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	respondJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Service:   "alx-project-nexus",
		Checks:    checks,
	})
}
