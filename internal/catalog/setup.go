package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/db"
)

// Init creates the catalog schema and tables.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, "catalog"); err != nil {
		return fmt.Errorf("ensure schema catalog: %w", err)
	}

	if err := d.AutoMigrate(&Category{}, &Product{}, &ProductImage{}); err != nil {
		return fmt.Errorf("migrate catalog tables: %w", err)
	}

	return nil
}
