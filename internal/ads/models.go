package ads

import (
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/db"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Ad is a classified listing. Status starts at pending and only moderators
// move it.
type Ad struct {
	ID          string    `gorm:"primaryKey" json:"id" yaml:"id"`
	Owner       string    `gorm:"not null;index" json:"owner" yaml:"owner"`
	Title       string    `gorm:"not null" json:"title" yaml:"title"`
	Description string    `gorm:"not null" json:"description" yaml:"description"`
	Location    string    `gorm:"not null" json:"location" yaml:"location"`
	Contact     string    `gorm:"not null" json:"contact" yaml:"contact"`
	Age         int       `gorm:"not null" json:"age" yaml:"age"`
	PhotoURL    string    `json:"photo_url,omitempty" yaml:"photo_url,omitempty"`
	Status      Status    `gorm:"type:text;not null;index" json:"status" yaml:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func (Ad) TableName() string { return db.Schema + ".ads" }

// ReviewLog records one moderation action.
type ReviewLog struct {
	ID         string    `gorm:"primaryKey" json:"id" yaml:"id"`
	AdID       string    `gorm:"not null;index" json:"ad_id" yaml:"ad_id"`
	Reviewer   string    `gorm:"not null" json:"reviewer" yaml:"reviewer"`
	FromStatus Status    `gorm:"type:text;not null" json:"from_status" yaml:"from_status"`
	ToStatus   Status    `gorm:"type:text;not null" json:"to_status" yaml:"to_status"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

func (ReviewLog) TableName() string { return db.Schema + ".review_logs" }
