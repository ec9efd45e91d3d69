package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable product owned by an organization
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"not null" json:"name"`

	// Archived products stay queryable but are excluded from the
	// organization's active product list
	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}
