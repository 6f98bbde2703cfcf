package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"gorm.io/gorm"
)

// UserStore persists users. CreateUser returns common.ErrAlreadyExists for a
// taken username; lookups return common.ErrNotFound.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	FindUser(ctx context.Context, username string) (*User, error)
	SetRole(ctx context.Context, username, role string) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(d *gorm.DB) *GormUserStore {
	return &GormUserStore{db: d}
}

func (s *GormUserStore) CreateUser(ctx context.Context, u *User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) FindUser(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *GormUserStore) SetRole(ctx context.Context, username, role string) error {
	res := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("set role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
