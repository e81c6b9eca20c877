package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Handler reports liveness and readiness. Redis is optional; the engine
// degrades to uncached reads without it, so a missing client never fails
// the readiness probe.
type Handler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHandler(db *sqlx.DB, redisClient *redis.Client) *Handler {
	return &Handler{
		db:    db,
		redis: redisClient,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "Database connection failed",
		})
		return
	}

	cacheStatus := "disabled"
	if h.redis != nil {
		cacheStatus = "UP"
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			cacheStatus = "DOWN"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "cache": cacheStatus})
}
