package ads

import (
	"github.com/PrivatePlace/PP-Backend/internal/db"
	"gorm.io/gorm"
)

// Init creates the ads and review log tables.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, db.Schema); err != nil {
		return err
	}
	if err := d.AutoMigrate(&Ad{}, &ReviewLog{}); err != nil {
		return err
	}

	// Owner's tabs and the browse list both filter on status, newest first.
	return d.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ads_status_created
		ON privateplace.ads (status, created_at DESC);
	`).Error
}
