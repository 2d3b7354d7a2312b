// FILE: aqarat-crm/models/installment.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы платежа по рассрочке. Статус в строке таблицы — снимок,
// авторитетное значение вычисляется сервисом расчётов из дат и сумм.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
	InstallmentStatusOverdue = "overdue"
)

// Installment представляет один плановый платеж по договору.
type Installment struct {
	gorm.Model
	ContractID uint       `json:"contract_id" gorm:"not null;index"`
	Contract   Contract   `json:"contract"`
	Amount     float64    `json:"amount" gorm:"type:numeric(12,2);not null"`
	DueDate    time.Time  `json:"due_date" gorm:"not null"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
	PaidAmount float64    `json:"paid_amount" gorm:"type:numeric(12,2);default:0"`
	Status     string     `json:"status" gorm:"default:pending;index"`
	Comment    string     `json:"comment"`
}

func (Installment) TableName() string { return "installments" }
