package admin

import (
	"time"
)

// Admin is an administrator account. Admins own tasks.
type Admin struct {
	ID           string    `gorm:"primaryKey;type:text" bson:"_id"`
	Name         string    `gorm:"not null;type:text" bson:"name"`
	Email        string    `gorm:"uniqueIndex;not null;type:text" bson:"email"`
	PasswordHash string    `gorm:"not null;type:text" bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// TableName returns the table name for the Admin entity.
func (Admin) TableName() string {
	return "admins"
}

// Claims is the identity carried by a verified session token.
type Claims struct {
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
