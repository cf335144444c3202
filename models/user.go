package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User rows exist only for registered accounts. Carts and orders reference
// owners by plain user_id with no foreign key, because guest tokens produce
// owner ids that never appear in this table.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
