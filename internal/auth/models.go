package auth

import (
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/db"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	MinAge = 18
	MaxAge = 120
)

// User is keyed by the username the person picked at registration.
type User struct {
	Username     string    `gorm:"primaryKey" json:"username" yaml:"username"`
	Name         string    `gorm:"not null" json:"name" yaml:"name"`
	Age          int       `gorm:"not null" json:"age" yaml:"age"`
	Location     string    `gorm:"not null" json:"location" yaml:"location"`
	LookingFor   string    `gorm:"not null" json:"looking_for" yaml:"looking_for"`
	PasswordHash string    `gorm:"not null" json:"-" yaml:"password_hash"`
	Role         string    `gorm:"not null;index" json:"role" yaml:"role"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func (User) TableName() string { return db.Schema + ".users" }

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type RegisterRequest struct {
	Name            string `json:"name" yaml:"name"`
	Age             int    `json:"age" yaml:"age"`
	Location        string `json:"location" yaml:"location"`
	LookingFor      string `json:"looking_for" yaml:"looking_for"`
	Username        string `json:"username" yaml:"username"`
	Password        string `json:"password" yaml:"password"`
	ConfirmPassword string `json:"confirm_password" yaml:"confirm_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostDefaults prefills the ad form from the poster's profile.
type PostDefaults struct {
	Location string `json:"location"`
	Age      int    `json:"age"`
}

type MeResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}
