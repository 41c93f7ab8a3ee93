package access

import (
	"context"
	"errors"
	"fmt"

	"warehouseManagement/models"
	"warehouseManagement/repository"
)

// ErrInvalidCredentials is the only authentication failure. Unknown usernames
// and wrong passwords are deliberately indistinguishable, matching the
// behavior existing clients depend on.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotAuthorized is returned when an authenticated user lacks the role an
// operation requires.
var ErrNotAuthorized = errors.New("admin access only")

const (
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword is the bootstrap credential. Operators must rotate
	// it in any real deployment.
	DefaultAdminPassword = "admin123"
)

// Service implements credential checks, user creation, and the role gate for
// admin-only operations.
type Service struct {
	users repository.UserRepositoryI
}

func NewService(users repository.UserRepositoryI) *Service {
	return &Service{users: users}
}

// Authenticate looks up the user by exact username and compares the stored
// password with the supplied one by exact string equality.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CreateUser inserts a new account. If the username already exists the call
// is a silent no-op: no error, no overwrite.
func (s *Service) CreateUser(ctx context.Context, username, password string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return s.users.CreateIfAbsent(ctx, &models.User{Username: username, Password: password, Role: role})
}

// Authorize reports whether role satisfies the required role exactly.
func (s *Service) Authorize(role, required models.Role) bool {
	return role == required
}

// RequireAdmin returns ErrNotAuthorized unless role is admin.
func (s *Service) RequireAdmin(role models.Role) error {
	if !s.Authorize(role, models.RoleAdmin) {
		return ErrNotAuthorized
	}
	return nil
}

// ListUsers returns all accounts (usernames and roles only) for the admin panel.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// EnsureAdmin seeds the default admin account if it does not exist yet.
// Running it again is a no-op: it never resets a password that has been
// rotated since the first bootstrap. An empty password falls back to the
// built-in default.
func (s *Service) EnsureAdmin(ctx context.Context, password string) error {
	if password == "" {
		password = DefaultAdminPassword
	}
	existing, err := s.users.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	return s.users.CreateIfAbsent(ctx, &models.User{
		Username: DefaultAdminUsername,
		Password: password,
		Role:     models.RoleAdmin,
	})
}
