package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

type User struct {
	gorm.Model
	Email        string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	CompanyName  string   `json:"company_name" gorm:"size:255"`
	Role         UserRole `json:"role" gorm:"size:16;default:'client'"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
