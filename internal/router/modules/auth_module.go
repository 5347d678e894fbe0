package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/juanignacioalonso/prueba-backend-global-think/internal/interface/http"
)

// AuthModule exposes the public endpoints: login and the health probe.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.Handler.Login)
	rg.GET("/healthz", handlers.Health)
}
