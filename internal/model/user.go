package model

import (
	"time"

	"campushub/internal/patch"
)

// Owned is implemented by records bound to an owning identity.
type Owned interface {
	OwnerID() uint
}

// User represents a registered campus account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName     string    `json:"full_name" gorm:"size:100"`
	Bio          string    `json:"bio" gorm:"size:500;default:''"`
	Avatar       string    `json:"avatar" gorm:"size:255"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID returns the user's own id; an account is owned by itself.
func (u *User) OwnerID() uint {
	return u.ID
}

// UserPatch lists the profile fields a user may change about themselves.
type UserPatch struct {
	FullName patch.Field[string] `json:"full_name" swaggertype:"string"`
	Bio      patch.Field[string] `json:"bio" swaggertype:"string"`
	Avatar   patch.Field[string] `json:"avatar" swaggertype:"string"`
}

// Apply merges the present fields onto u and returns the touched columns.
func (p UserPatch) Apply(u *User) []string {
	return patch.Apply(
		patch.Set("full_name", &u.FullName, p.FullName),
		patch.Set("bio", &u.Bio, p.Bio),
		patch.Set("avatar", &u.Avatar, p.Avatar),
	)
}
