package models

import "gorm.io/gorm"

// User represents an account. Email is the identity key; Username is an
// optional display name and is not required to be unique.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	Username     string `gorm:"size:150"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
}
