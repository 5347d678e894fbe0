package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
	repo "github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/repository"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrMalformedUserID    = errors.New("malformed user id")
	// ErrStorage hides unclassified store failures from callers; the wrapped
	// detail goes to the log only.
	ErrStorage = errors.New("storage failure")
)

// dummyHash keeps login timing flat when the email is unknown: the bcrypt
// compare runs either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// TokenSigner issues signed access tokens. The interface lives with its
// consumer; helpers.JWTManager satisfies it.
type TokenSigner interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
}

type Service struct {
	Repo       repo.UserRepository
	Tokens     TokenSigner
	Redis      *redis.Client
	Logger     *logrus.Logger
	BcryptCost int
	CacheTTL   time.Duration
}

func NewService(r repo.UserRepository, tokens TokenSigner, rdb *redis.Client, logger *logrus.Logger, bcryptCost int, cacheTTL time.Duration) *Service {
	return &Service{
		Repo:       r,
		Tokens:     tokens,
		Redis:      rdb,
		Logger:     logger,
		BcryptCost: bcryptCost,
		CacheTTL:   cacheTTL,
	}
}

func userCacheKey(id string) string {
	return "user:doc:" + id
}

// validateUserID checks the store's native identifier format (24-char hex
// ObjectID) locally, before any store round-trip.
func validateUserID(id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedUserID, id)
	}
	return nil
}

func (s *Service) storageErr(op string, err error) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("op", op).Error("store operation failed")
	}
	return fmt.Errorf("%w: %s", ErrStorage, op)
}

type CreateUserInput struct {
	Name        string
	Email       string
	Age         int
	Password    string
	ProfileCode string
}

// Create resolves the profile code, hashes the password, and persists the
// user. The code is resolved before hashing so an invalid request never pays
// the bcrypt cost.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	profile, err := entity.ResolveProfile(in.ProfileCode)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Age:      in.Age,
		Password: hash,
		Profile:  profile,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storageErr("create user", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Profile.RoleName}).Info("user created")
	}
	return u, nil
}

// List returns users filtered by role name when role is non-empty.
func (s *Service) List(ctx context.Context, role string) ([]entity.User, error) {
	users, err := s.Repo.List(ctx, role)
	if err != nil {
		return nil, s.storageErr("list users", err)
	}
	return users, nil
}

// Get returns the user with the given identifier. The password hash is
// stripped from the result; nothing outside the login flow reads it.
func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	if err := validateUserID(id); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, userCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageErr("get user", err)
	}
	u.Password = ""

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, userCacheKey(id), u, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
		}
	}
	return u, nil
}

type UpdateUserInput struct {
	Name        *string
	Email       *string
	Age         *int
	Password    *string
	ProfileCode *string
}

// Update applies a partial update. A supplied profile code is re-resolved and
// replaces the embedded profile as a whole; a supplied password is re-hashed.
func (s *Service) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	if err := validateUserID(id); err != nil {
		return nil, err
	}

	changes := repo.UserChanges{
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	}
	if in.ProfileCode != nil {
		profile, err := entity.ResolveProfile(*in.ProfileCode)
		if err != nil {
			return nil, err
		}
		changes.Profile = &profile
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		changes.Password = &hash
	}

	u, err := s.Repo.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		default:
			return nil, s.storageErr("update user", err)
		}
	}
	s.invalidateCache(ctx, id)
	return u, nil
}

// Delete removes the user. Who may delete is the routing layer's concern.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateUserID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return s.storageErr("delete user", err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *Service) invalidateCache(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, userCacheKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("user cache invalidation failed")
	}
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Login authenticates by email and password and issues an access token
// asserting {sub, email, role}. Unknown email and wrong password collapse
// into the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.storageErr("find user by email", err)
	}

	hash := dummyHash
	if u != nil {
		hash = u.Password
	}
	match := helpers.CompareHashAndPassword(hash, password)
	if u == nil || !match {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.GenerateAccessToken(u.ID, u.Email, u.Profile.RoleName)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("access token generation failed")
		}
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp}, nil
}
