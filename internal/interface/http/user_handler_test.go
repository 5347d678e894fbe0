package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userapp "github.com/juanignacioalonso/prueba-backend-global-think/internal/application"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
	repo "github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/repository"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/helpers"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/validation"
)

const validID = "507f1f77bcf86cd799439011"

type stubUserRepository struct {
	CreateFunc     func(ctx context.Context, u *entity.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	ListFunc       func(ctx context.Context, role string) ([]entity.User, error)
	UpdateFunc     func(ctx context.Context, id string, changes repo.UserChanges) (*entity.User, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (s *stubUserRepository) Create(ctx context.Context, u *entity.User) error {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, u)
	}
	u.ID = validID
	return nil
}

func (s *stubUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, id)
	}
	return nil, repo.ErrNotFound
}

func (s *stubUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.GetByEmailFunc != nil {
		return s.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepository) List(ctx context.Context, role string) ([]entity.User, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, role)
	}
	return nil, nil
}

func (s *stubUserRepository) Update(ctx context.Context, id string, changes repo.UserChanges) (*entity.User, error) {
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, id, changes)
	}
	return nil, repo.ErrNotFound
}

func (s *stubUserRepository) Delete(ctx context.Context, id string) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, id)
	}
	return repo.ErrNotFound
}

func newTestRouter(t *testing.T, r repo.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := userapp.NewService(r, jwt, nil, nil, bcrypt.MinCost, time.Minute)

	engine := gin.New()
	api := engine.Group("/api")

	authHandler := NewAuthHandler(svc, nil)
	userHandler := NewUserHandler(svc, nil)
	api.POST("/login", authHandler.Login)
	api.POST("/users", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.PATCH("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)
	return engine
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLoginEndpoint(t *testing.T) {
	hash, err := helpers.HashPassword("right", bcrypt.MinCost)
	require.NoError(t, err)

	repoStub := &stubUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "x@x.com" {
				return &entity.User{
					ID:       validID,
					Email:    email,
					Password: hash,
					Profile:  entity.Profile{Code: "C02", RoleID: 2, RoleName: "user"},
				}, nil
			}
			return nil, nil
		},
	}
	engine := newTestRouter(t, repoStub)

	t.Run("valid credentials return a token", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/login", `{"email":"x@x.com","password":"right"}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		assert.NotEmpty(t, data["access_token"])
	})

	t.Run("wrong password and unknown email produce identical responses", func(t *testing.T) {
		wrong := doJSON(engine, http.MethodPost, "/api/login", `{"email":"x@x.com","password":"wrong"}`)
		missing := doJSON(engine, http.MethodPost, "/api/login", `{"email":"missing@x.com","password":"right"}`)

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, missing.Code)
		assert.Equal(t, decodeBody(t, wrong)["message"], decodeBody(t, missing)["message"])
	})

	t.Run("malformed payload is a 400", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/login", `{"email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		engine := newTestRouter(t, &stubUserRepository{})
		w := doJSON(engine, http.MethodPost, "/api/users",
			`{"name":"Juan","email":"juan@test.com","password":"secret1","age":25,"profileCode":"C02"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, validID, data["id"])
		profile := data["profile"].(map[string]any)
		assert.Equal(t, float64(2), profile["roleId"])
		assert.Equal(t, "user", profile["roleName"])
		// the password hash never appears in a response
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("unknown profile code", func(t *testing.T) {
		engine := newTestRouter(t, &stubUserRepository{})
		w := doJSON(engine, http.MethodPost, "/api/users",
			`{"name":"Juan","email":"juan@test.com","password":"secret1","age":25,"profileCode":"ZZ99"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ZZ99")
	})

	t.Run("duplicate email", func(t *testing.T) {
		engine := newTestRouter(t, &stubUserRepository{
			CreateFunc: func(ctx context.Context, u *entity.User) error {
				return repo.ErrDuplicateEmail
			},
		})
		w := doJSON(engine, http.MethodPost, "/api/users",
			`{"name":"Juan","email":"juan@test.com","password":"secret1","age":25,"profileCode":"C02"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		engine := newTestRouter(t, &stubUserRepository{})
		w := doJSON(engine, http.MethodPost, "/api/users", `{"name":"Juan"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		engine := newTestRouter(t, &stubUserRepository{})
		w := doJSON(engine, http.MethodPost, "/api/users",
			`{"name":"Juan","email":"juan@test.com","password":"abc","age":25,"profileCode":"C02"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetUserEndpoint(t *testing.T) {
	repoStub := &stubUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			if id == validID {
				return &entity.User{ID: id, Name: "Juan", Email: "juan@test.com"}, nil
			}
			return nil, repo.ErrNotFound
		},
	}
	engine := newTestRouter(t, repoStub)

	t.Run("found", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/users/"+validID, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/users/123", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("well-formed but absent id", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/users/507f1f77bcf86cd799439099", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateUserEndpoint(t *testing.T) {
	engine := newTestRouter(t, &stubUserRepository{
		UpdateFunc: func(ctx context.Context, id string, changes repo.UserChanges) (*entity.User, error) {
			u := &entity.User{ID: id, Name: "Juan", Email: "juan@test.com"}
			if changes.Profile != nil {
				u.Profile = *changes.Profile
			}
			return u, nil
		},
	})

	w := doJSON(engine, http.MethodPatch, "/api/users/"+validID, `{"profileCode":"C01"}`)
	require.Equal(t, http.StatusOK, w.Code)

	profile := decodeBody(t, w)["data"].(map[string]any)["profile"].(map[string]any)
	assert.Equal(t, "C01", profile["code"])
	assert.Equal(t, float64(1), profile["roleId"])
	assert.Equal(t, "admin", profile["roleName"])
}

func TestDeleteUserEndpoint(t *testing.T) {
	engine := newTestRouter(t, &stubUserRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			if id == validID {
				return nil
			}
			return repo.ErrNotFound
		},
	})

	assert.Equal(t, http.StatusOK, doJSON(engine, http.MethodDelete, "/api/users/"+validID, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(engine, http.MethodDelete, "/api/users/507f1f77bcf86cd799439099", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(engine, http.MethodDelete, "/api/users/123", "").Code)
}
