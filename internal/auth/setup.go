package auth

import (
	"github.com/PrivatePlace/PP-Backend/internal/db"
	"gorm.io/gorm"
)

// Init creates the schema and users table.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, db.Schema); err != nil {
		return err
	}
	return d.AutoMigrate(&User{})
}
