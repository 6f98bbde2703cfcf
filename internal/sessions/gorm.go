package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/db"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Session struct {
	SessionID   string    `gorm:"primaryKey"`
	Username    string    `gorm:"index"`
	AgeVerified bool      `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

func (Session) TableName() string { return db.Schema + ".sessions" }

// GormStore keeps sessions in postgres so they survive restarts and can be
// shared between replicas.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{db: d}
}

func (s *GormStore) Migrate() error {
	if err := db.EnsureSchema(s.db, db.Schema); err != nil {
		return err
	}
	return s.db.AutoMigrate(&Session{})
}

func (s *GormStore) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	var row Session
	err := s.db.WithContext(ctx).First(&row, "session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.SessionData{}, common.ErrNotFound
	}
	if err != nil {
		return utils.SessionData{}, fmt.Errorf("find session: %w", err)
	}

	return utils.SessionData{
		SessionID:   row.SessionID,
		Username:    row.Username,
		AgeVerified: row.AgeVerified,
		ExpiresAt:   row.ExpiresAt,
	}, nil
}

func (s *GormStore) SaveSession(ctx context.Context, data utils.SessionData) error {
	row := Session{
		SessionID:   data.SessionID,
		Username:    data.Username,
		AgeVerified: data.AgeVerified,
		ExpiresAt:   data.ExpiresAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "age_verified", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteSession(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("session_id = ?", id).Delete(&Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// PurgeExpired removes sessions whose expiry has passed.
func (s *GormStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}
