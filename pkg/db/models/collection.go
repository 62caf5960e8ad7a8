package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection groups products for storefront browsing.
type Collection struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description;not null;default:''" json:"description"`
	Image       string    `gorm:"column:image;not null;default:''" json:"image"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
