package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

const maxPasswordBytes = 72

type Service struct {
	users         UserStore
	adminUsername string
	bcryptCost    int
	now           func() time.Time
}

// NewService builds the auth service. adminUsername is the account that is
// granted the admin role when it registers; empty disables that.
func NewService(users UserStore, adminUsername string, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:         users,
		adminUsername: adminUsername,
		bcryptCost:    bcryptCost,
		now:           time.Now,
	}
}

func validateRegistration(req RegisterRequest) error {
	if req.Name == "" || req.Age == 0 || req.Location == "" || req.LookingFor == "" ||
		req.Username == "" || req.Password == "" {
		return common.Invalid("", "Please fill in all fields")
	}
	if req.Age < MinAge {
		return common.Invalid("age", "You must be 18 or older to register")
	}
	if req.Age > MaxAge {
		return common.Invalid("age", "Age must be 120 or less")
	}
	if req.Password != req.ConfirmPassword {
		return common.Invalid("confirm_password", "Passwords do not match")
	}
	if len(req.Password) > maxPasswordBytes {
		return common.Invalid("password", "Password must be at most 72 bytes")
	}
	return nil
}

// Register validates the form and stores a new user with a bcrypt hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.users.FindUser(ctx, req.Username); err == nil {
		return nil, common.Invalid("username", "Username already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := RoleUser
	if s.adminUsername != "" && req.Username == s.adminUsername {
		role = RoleAdmin
	}

	user := &User{
		Username:     req.Username,
		Name:         req.Name,
		Age:          req.Age,
		Location:     req.Location,
		LookingFor:   req.LookingFor,
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    s.now(),
	}

	// Two registrations racing past FindUser both reach here; the store's
	// primary key decides.
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.Invalid("username", "Username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login checks the password. It never says which half of the pair was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindUser(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) User(ctx context.Context, username string) (*User, error) {
	return s.users.FindUser(ctx, username)
}

// RoleOf satisfies middleware.RoleFetcher.
func (s *Service) RoleOf(ctx context.Context, username string) (string, error) {
	u, err := s.users.FindUser(ctx, username)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *Service) IsAdmin(ctx context.Context, username string) bool {
	role, err := s.RoleOf(ctx, username)
	return err == nil && role == RoleAdmin
}

// Defaults returns the profile values used to prefill a new ad.
func (s *Service) Defaults(ctx context.Context, username string) (PostDefaults, error) {
	u, err := s.users.FindUser(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return PostDefaults{Age: MinAge}, nil
	}
	if err != nil {
		return PostDefaults{}, err
	}
	return PostDefaults{Location: u.Location, Age: u.Age}, nil
}

// SetRole grants or revokes admin rights.
func (s *Service) SetRole(ctx context.Context, username, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return common.Invalid("role", fmt.Sprintf("unknown role %q", role))
	}
	return s.users.SetRole(ctx, username, role)
}
