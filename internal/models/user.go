package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UID       string    `gorm:"uniqueIndex;size:36;not null" json:"uid"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	FirstName string    `gorm:"size:80;not null" json:"first_name"`
	LastName  string    `gorm:"size:80" json:"last_name"`
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// CanModify reports whether the user may edit or delete content
// authored by ownerID. Admins may modify anything.
func (u *User) CanModify(ownerID uint) bool {
	return u.ID == ownerID || u.IsAdmin()
}
