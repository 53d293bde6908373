package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for a product.
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderKid    = "kid"
	GenderUnisex = "unisex"
)

// Product represents a sellable item in the catalog.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" gorm:"type:text;uniqueIndex;not null"`
	Price       float64        `json:"price" gorm:"not null;default:0"`
	Description *string        `json:"description" gorm:"type:text"`
	Slug        string         `json:"slug" gorm:"type:text;uniqueIndex;not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Sizes       []string       `json:"sizes" gorm:"type:text;serializer:json"`
	Gender      string         `json:"gender" gorm:"type:text;not null"`
	Tags        []string       `json:"tags" gorm:"type:text;serializer:json"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// BeforeCreate assigns an id and derives the slug from the title when none was given.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = NormalizeSlug(p.Slug)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	return nil
}

// BeforeUpdate keeps the slug normalised when it is overwritten.
func (p *Product) BeforeUpdate(tx *gorm.DB) error {
	if p.Slug != "" {
		p.Slug = NormalizeSlug(p.Slug)
	}
	return nil
}

// ImageURLs flattens the image rows into their URLs, keeping their order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// NormalizeSlug lower-cases s, turns spaces into underscores and drops apostrophes.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}
