package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a customer quote surfaced on the storefront home page.
type Testimonial struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Location    string    `gorm:"column:location;not null;default:''" json:"location"`
	Avatar      *string   `gorm:"column:avatar" json:"avatar,omitempty"`
	Rating      int       `gorm:"column:rating;not null;default:5" json:"rating"`
	Text        string    `gorm:"column:text;not null" json:"text"`
	ProductName *string   `gorm:"column:product_name" json:"product_name,omitempty"`
	IsPublished bool      `gorm:"column:is_published;not null;default:true" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
