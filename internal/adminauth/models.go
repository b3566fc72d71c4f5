package adminauth

import "time"

// Credential is the singleton admin password record. Exactly one row is
// expected; it is never exposed to clients.
type Credential struct {
	ID           string    `gorm:"primaryKey" json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Credential) TableName() string { return "store_admin.credentials" }
