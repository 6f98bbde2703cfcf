package ads

import (
	"context"
	"errors"
	"fmt"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"gorm.io/gorm"
)

// Store persists ads and their review history. Lookups of unknown ids return
// common.ErrNotFound.
type Store interface {
	CreateAd(ctx context.Context, ad *Ad) error
	GetAd(ctx context.Context, id string) (*Ad, error)
	ListByStatus(ctx context.Context, status Status) ([]Ad, error)
	ListByOwner(ctx context.Context, owner string) ([]Ad, error)
	// UpdateStatus moves entry.AdID to entry.ToStatus and appends entry to the
	// review log in one unit of work, filling in entry.FromStatus.
	UpdateStatus(ctx context.Context, entry *ReviewLog) error
	ListReviews(ctx context.Context, adID string) ([]ReviewLog, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{db: d}
}

func (s *GormStore) CreateAd(ctx context.Context, ad *Ad) error {
	if err := s.db.WithContext(ctx).Create(ad).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

func (s *GormStore) GetAd(ctx context.Context, id string) (*Ad, error) {
	var ad Ad
	err := s.db.WithContext(ctx).First(&ad, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ad: %w", err)
	}
	return &ad, nil
}

func (s *GormStore) ListByStatus(ctx context.Context, status Status) ([]Ad, error) {
	var out []Ad
	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list ads by status: %w", err)
	}
	return out, nil
}

func (s *GormStore) ListByOwner(ctx context.Context, owner string) ([]Ad, error) {
	var out []Ad
	if err := s.db.WithContext(ctx).Where("owner = ?", owner).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list ads by owner: %w", err)
	}
	return out, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, entry *ReviewLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ad Ad
		if err := tx.First(&ad, "id = ?", entry.AdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("load ad: %w", err)
		}
		if err := CanTransition(ad.Status, entry.ToStatus); err != nil {
			return err
		}
		entry.FromStatus = ad.Status

		if err := tx.Model(&Ad{}).Where("id = ?", entry.AdID).Update("status", entry.ToStatus).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("log review: %w", err)
		}
		return nil
	})
}

func (s *GormStore) ListReviews(ctx context.Context, adID string) ([]ReviewLog, error) {
	var out []ReviewLog
	if err := s.db.WithContext(ctx).Where("ad_id = ?", adID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}
