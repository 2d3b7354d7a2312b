// aqarat-crm/models/broker.go

package models

import "gorm.io/gorm"

// Broker представляет посредника (маклера), получающего комиссию со сделки.
type Broker struct {
	gorm.Model
	FullName       string  `json:"fullName" gorm:"not null"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commissionRate" gorm:"type:numeric(5,2);default:0"` // процент
	Notes          string  `json:"notes"`
}

func (Broker) TableName() string { return "brokers" }
