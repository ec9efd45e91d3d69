package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform user acting on behalf of an organization
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email string    `gorm:"not null;uniqueIndex" json:"email"`

	// Profile fields synced from GitHub, mirrored onto personal organizations
	Bio             *string `json:"bio,omitempty"`
	Company         *string `json:"company,omitempty"`
	Blog            *string `json:"blog,omitempty"`
	Location        *string `json:"location,omitempty"`
	TwitterUsername *string `json:"twitter_username,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
