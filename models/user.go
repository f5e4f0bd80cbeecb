package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "usuario"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Role      UserRole  `json:"role" gorm:"size:16;not null;default:'usuario'"`
	CreatedAt time.Time `json:"created_at"`
}
