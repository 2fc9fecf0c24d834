package router

import (
	userapp "github.com/fiqriashiddiqi/user-registry/internal/application"
	"github.com/fiqriashiddiqi/user-registry/internal/container"
	pginfra "github.com/fiqriashiddiqi/user-registry/internal/infrastructure/postgres"
	handlers "github.com/fiqriashiddiqi/user-registry/internal/interface/http"
	"github.com/fiqriashiddiqi/user-registry/internal/router/modules"
)

func buildUserModule() *modules.UserModule {
	repo := pginfra.NewUserRepository(container.GetDB(), container.GetLogger())
	service := userapp.NewService(repo, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())
	return modules.NewUserModule(handler)
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildUserModule())
	r.Add(modules.NewHealthModule(container.GetDB()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
