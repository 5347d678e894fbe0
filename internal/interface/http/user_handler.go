package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/juanignacioalonso/prueba-backend-global-think/internal/application"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/response"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Age         *int   `json:"age" binding:"required,gte=0"`
	ProfileCode string `json:"profileCode" binding:"required"`
}

type updateUserRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,pwd"`
	Age         *int    `json:"age" binding:"omitempty,gte=0"`
	ProfileCode *string `json:"profileCode" binding:"omitempty,min=1"`
}

type profileResponse struct {
	Code     string `json:"code"`
	RoleID   int    `json:"roleId"`
	RoleName string `json:"roleName"`
}

// userResponse serializes a user without its password hash.
type userResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Age     int             `json:"age"`
	Profile profileResponse `json:"profile"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
		Profile: profileResponse{
			Code:     u.Profile.Code,
			RoleID:   u.Profile.RoleID,
			RoleName: u.Profile.RoleName,
		},
	}
}

// writeServiceError maps domain error kinds onto HTTP statuses.
func (h *UserHandler) writeServiceError(c *gin.Context, err error) {
	var unknownCode *entity.ErrUnknownProfileCode
	switch {
	case errors.As(err, &unknownCode):
		resp := response.Error[any](c, http.StatusBadRequest, "invalid profile code",
			map[string]string{"profileCode": unknownCode.Code})
		c.JSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrMalformedUserID):
		resp := response.Error[any](c, http.StatusBadRequest, "malformed user id", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrUserNotFound):
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrEmailTaken):
		resp := response.Error[any](c, http.StatusConflict, "email already exists", nil)
		c.JSON(resp.Status, resp)
	default:
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Age:         *req.Age,
		Password:    req.Password,
		ProfileCode: req.ProfileCode,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, toUserResponse(u), "user created")
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "users")
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserResponse(u), "user")
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), userapp.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Age:         req.Age,
		Password:    req.Password,
		ProfileCode: req.ProfileCode,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserResponse(u), "user updated")
	c.JSON(resp.Status, resp)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "user deleted")
	c.JSON(resp.Status, resp)
}
