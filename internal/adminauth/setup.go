package adminauth

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/db"
)

// Init migrates the credential table and seeds the singleton row from
// initialPassword when the table is empty. An empty initialPassword with an
// empty table is an error: the admin console would be unreachable.
func Init(d *gorm.DB, initialPassword string) error {
	if err := db.EnsureSchema(d, "store_admin"); err != nil {
		return fmt.Errorf("ensure schema store_admin: %w", err)
	}

	if err := d.AutoMigrate(&Credential{}); err != nil {
		return fmt.Errorf("migrate credentials: %w", err)
	}

	var count int64
	if err := d.Model(&Credential{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if initialPassword == "" {
		return fmt.Errorf("no credential row and ADMIN_PASSWORD not set")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return d.Create(&Credential{
		ID:           uuid.New().String(),
		PasswordHash: string(hashed),
	}).Error
}
