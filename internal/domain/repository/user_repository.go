package repository

import (
	"context"
	"errors"

	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
)

// Sentinel errors the store implementations translate their native failures into.
var (
	// ErrNotFound means no document matched the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail means a write violated the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user persistence. Identifiers are
// the store's native primary keys in their hex string form.
type UserRepository interface {
	// Create inserts a new user and fills in the assigned ID and timestamps.
	Create(ctx context.Context, u *entity.User) error
	// GetByID returns the user with the given identifier, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail returns the user with the given email. A miss is not an
	// error: it returns (nil, nil).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns users whose profile role name equals role, or all users
	// when role is empty. Order is store-native.
	List(ctx context.Context, role string) ([]entity.User, error)
	// Update applies the non-nil fields of changes to the user with the given
	// identifier and returns the resulting document, or ErrNotFound.
	Update(ctx context.Context, id string, changes UserChanges) (*entity.User, error)
	// Delete removes the user with the given identifier, or returns
	// ErrNotFound if nothing was deleted.
	Delete(ctx context.Context, id string) error
}

// UserChanges is a partial update: nil fields are left untouched. Profile is
// always replaced as a whole value, never merged field by field.
type UserChanges struct {
	Name     *string
	Email    *string
	Age      *int
	Password *string
	Profile  *entity.Profile
}
