package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// HealthHandler reports liveness and readiness. Readiness covers the ledger
// runtime itself (dispatch loop up, genesis factories installed) and the
// infra sinks; each sink probe is nil-guarded so partial deployments report
// honestly instead of panicking.
type HealthHandler struct {
	sys         *ledger.System
	genesis     []ledger.Address
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	amqpConn    *amqp.Connection
}

func NewHealthHandler(sys *ledger.System, genesis []ledger.Address, dbPool *pgxpool.Pool, redisClient *redis.Client, amqpConn *amqp.Connection) *HealthHandler {
	return &HealthHandler{
		sys:         sys,
		genesis:     genesis,
		dbPool:      dbPool,
		redisClient: redisClient,
		amqpConn:    amqpConn,
	}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.sys.Running() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "ledger": "stopped"})
		return
	}
	for _, addr := range h.genesis {
		if !h.sys.IsDeployed(addr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"ledger": "genesis actor missing: " + addr.Short(),
			})
			return
		}
	}

	status := gin.H{"status": "ok", "ledger": "ready"}

	if h.dbPool != nil {
		if err := h.dbPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "postgres": "unavailable"})
			return
		}
		status["postgres"] = "connected"
	}
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "redis": "unavailable"})
			return
		}
		status["redis"] = "connected"
	}
	if h.amqpConn != nil {
		if h.amqpConn.IsClosed() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "rabbitmq": "unavailable"})
			return
		}
		status["rabbitmq"] = "connected"
	}

	c.JSON(http.StatusOK, status)
}
