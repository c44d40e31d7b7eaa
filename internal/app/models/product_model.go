package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	ProductCategoryTshirt   ProductCategory = "tshirt"
	ProductCategoryBag      ProductCategory = "bag"
	ProductCategorySouvenir ProductCategory = "souvenir"
	ProductCategoryBook     ProductCategory = "book"
	ProductCategoryCourse   ProductCategory = "course"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `gorm:"index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	// Options holds per-product variants (sizes, colors, patterns) as a
	// JSON document.
	Options   string         `json:"options"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductCreateRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Category    ProductCategory `json:"category" validate:"required,oneof=tshirt bag souvenir book course"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Image       string          `json:"image" validate:"omitempty,max=500"`
	Stock       int             `json:"stock" validate:"min=0"`
	Options     string          `json:"options" validate:"omitempty,max=2000"`
}
