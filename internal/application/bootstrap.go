package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/juanignacioalonso/prueba-backend-global-think/internal/domain/entity"
)

const adminProfileCode = "C01"

// EnsureAdmin creates the well-known administrator account when it does not
// exist yet. It runs once at startup, before the server accepts requests.
// The check-then-create sequence is not transactional; two concurrent first
// boots could in principle race, and one of them simply loses to the unique
// email index.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return s.storageErr("check admin account", err)
	}
	if existing != nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("admin account already present")
		}
		return nil
	}

	u, err := s.Create(ctx, CreateUserInput{
		Name:        name,
		Email:       email,
		Age:         0,
		Password:    password,
		ProfileCode: adminProfileCode,
	})
	if err != nil {
		// A concurrent boot may have won the race; that still leaves an admin.
		if errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": email, "role": entity.RoleAdmin}).
			Info("seeded default admin account")
	}
	return nil
}
