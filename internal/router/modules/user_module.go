package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
	handlers "github.com/juanignacioalonso/prueba-backend-global-think/internal/interface/http"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/interface/middleware"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/helpers"
)

// UserModule wires the user CRUD routes. All of them require a valid access
// token; mutations are admin-only, reads accept either role.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(m.JWT))

	adminOnly := middleware.RequireRoles(entity.RoleAdmin)
	anyRole := middleware.RequireRoles(entity.RoleAdmin, entity.RoleUser)

	users.POST("", adminOnly, m.Handler.Create)
	users.GET("", anyRole, m.Handler.List)
	users.GET("/:id", anyRole, m.Handler.Get)
	users.PATCH("/:id", adminOnly, m.Handler.Update)
	users.DELETE("/:id", adminOnly, m.Handler.Delete)
}
