package router

import (
	userapp "github.com/juanignacioalonso/prueba-backend-global-think/internal/application"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/container"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/infrastructure/mongodb"
	handlers "github.com/juanignacioalonso/prueba-backend-global-think/internal/interface/http"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/router/modules"
)

// BuildService constructs the user service from container singletons.
func BuildService() *userapp.Service {
	cfg := container.GetConfig()
	repo := mongodb.NewUserRepository(container.GetUsersCollection())
	return userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		cfg.BcryptCost,
		cfg.UserCacheTTL,
	)
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry, svc *userapp.Service) {
	logger := container.GetLogger()

	authHandler := handlers.NewAuthHandler(svc, logger)
	userHandler := handlers.NewUserHandler(svc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
}
