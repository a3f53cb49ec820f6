package model

import "time"

const DefaultProfilePic = "default.jpg"

// User's email is intended to be unique but is deliberately not backed by a
// unique index: registration checks for an existing account first, so two
// concurrent registrations can still race. See AuthService.Register.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Age          int       `json:"age"`
	Email        string    `gorm:"size:128;not null;index" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	ProfilePic   string    `gorm:"size:255;not null;default:default.jpg" json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
