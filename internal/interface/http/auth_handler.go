package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/juanignacioalonso/prueba-backend-global-think/internal/application"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/interface/middleware"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/response"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/validation"
)

type AuthHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *userapp.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			// one generic message for unknown email and wrong password alike
			if h.Logger != nil {
				h.Logger.WithFields(logrus.Fields{
					"email": req.Email,
					"ip":    middleware.ClientIP(c),
				}).Warn("login failed")
			}
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			c.JSON(resp.Status, resp)
			return
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}

	resp := response.Success(c, http.StatusOK, loginResponse{AccessToken: res.AccessToken}, "login successful")
	c.JSON(resp.Status, resp)
}
