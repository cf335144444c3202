package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackageCategoryName marks the category whose products may be sold as
// add-on packages at checkout.
const PackageCategoryName = "package"

type Category struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Products []Product `gorm:"many2many:product_categories" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
