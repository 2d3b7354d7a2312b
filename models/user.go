// aqarat-crm/models/user.go
package models

import "gorm.io/gorm"

// User представляет сотрудника офиса продаж.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"unique;not null"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-" gorm:"not null"`
	Roles        []Role `json:"roles" gorm:"many2many:user_roles;"`
}
