package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiqriashiddiqi/user-registry/internal/container"
	handlers "github.com/fiqriashiddiqi/user-registry/internal/interface/http"
	"github.com/fiqriashiddiqi/user-registry/internal/interface/middleware"
)

// UserModule wires the user aggregate endpoints under /api/users.
// Write endpoints get a tighter per-IP limit than reads.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	{
		users.POST("", writeLimiter, m.Handler.Create)
		users.POST("/bulk", writeLimiter, m.Handler.CreateBulk)
		users.GET("", readLimiter, m.Handler.Search)
		users.GET("/:id", readLimiter, m.Handler.Get)
		users.PATCH("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)

		users.POST("/:id/account", writeLimiter, m.Handler.CreateAccount)
		users.PUT("/:id/account", writeLimiter, m.Handler.UpdateAccount)
		users.DELETE("/:id/account", writeLimiter, m.Handler.DeleteAccount)

		users.POST("/:id/address", writeLimiter, m.Handler.CreateAddress)
		users.PUT("/:id/address", writeLimiter, m.Handler.UpdateAddress)
		users.DELETE("/:id/address", writeLimiter, m.Handler.DeleteAddress)

		users.POST("/:id/preferences", writeLimiter, m.Handler.CreatePreferences)
		users.PUT("/:id/preferences", writeLimiter, m.Handler.UpdatePreferences)
		users.DELETE("/:id/preferences", writeLimiter, m.Handler.DeletePreferences)

		users.POST("/:id/profile", writeLimiter, m.Handler.CreateProfile)
		users.PUT("/:id/profile", writeLimiter, m.Handler.UpdateProfile)
		users.DELETE("/:id/profile", writeLimiter, m.Handler.DeleteProfile)
	}
}
