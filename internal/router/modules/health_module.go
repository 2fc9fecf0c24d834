package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiqriashiddiqi/user-registry/internal/infrastructure/postgres"
	"github.com/fiqriashiddiqi/user-registry/pkg/response"
)

// HealthModule exposes a liveness probe that pings the connection pool.
type HealthModule struct {
	DB *postgres.DB
}

func NewHealthModule(db *postgres.DB) *HealthModule {
	return &HealthModule{DB: db}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		if err := m.DB.Ping(c.Request.Context()); err != nil {
			response.Error[any](c, http.StatusServiceUnavailable, "database unreachable", nil)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{"status": "ok"}, "healthy", nil)
	})
}
