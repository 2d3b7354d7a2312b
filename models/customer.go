// aqarat-crm/models/customer.go

package models

import (
	"gorm.io/gorm"
)

// Customer представляет покупателя недвижимости.
type Customer struct {
	gorm.Model
	FullName   string `json:"fullName" gorm:"not null"`
	Phone      string `json:"phone" gorm:"index"`
	NationalID string `json:"nationalId" gorm:"unique"` // 14-значный номер удостоверения
	Address    string `json:"address"`
	Email      string `json:"email"`
	Notes      string `json:"notes"`

	Contracts []Contract `json:"contracts,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string { return "customers" }
