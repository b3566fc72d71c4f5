package catalog

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

type Product struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// Plain column, no FK: deleting a category leaves its products in place
	// with a dangling reference, matching the store's referential policy.
	CategoryID string         `gorm:"index;not null" json:"category_id"`
	CreatedAt  time.Time      `json:"-"`
	Images     []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product_images,omitempty"`
}

type ProductImage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"-"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	CreatedAt time.Time `json:"-"`
}

func (Category) TableName() string     { return "catalog.categories" }
func (Product) TableName() string      { return "catalog.products" }
func (ProductImage) TableName() string { return "catalog.product_images" }
