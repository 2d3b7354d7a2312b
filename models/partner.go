// aqarat-crm/models/partner.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner представляет партнера, участвующего в распределении прибыли.
type Partner struct {
	gorm.Model
	FullName        string  `json:"fullName" gorm:"not null"`
	Phone           string  `json:"phone"`
	SharePercentage float64 `json:"sharePercentage" gorm:"type:numeric(5,2);default:0"`
	Notes           string  `json:"notes"`
}

func (Partner) TableName() string { return "partners" }

// PartnerDebt представляет долг партнера перед компанией (или наоборот).
type PartnerDebt struct {
	gorm.Model
	PartnerID uint       `json:"partnerId" gorm:"not null;index"`
	Partner   *Partner   `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	Amount    float64    `json:"amount" gorm:"type:numeric(12,2);not null"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Settled   bool       `json:"settled" gorm:"default:false"`
	Notes     string     `json:"notes"`
}

func (PartnerDebt) TableName() string { return "partner_debts" }

// Типы ежедневных операций партнера.
const (
	PartnerTxIncome  = "income"  // приход
	PartnerTxExpense = "expense" // расход
	PartnerTxClosing = "closing" // закрытие дня
)

// PartnerDailyTransaction представляет одну операцию партнера за день.
// RunningBalance — накопительный снимок, записывается вызывающей стороной
// один раз при создании и агрегацией НЕ пересчитывается.
type PartnerDailyTransaction struct {
	gorm.Model
	PartnerID       uint      `json:"partnerId" gorm:"not null;index"`
	Partner         *Partner  `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	ContractID      *uint     `json:"contractId,omitempty" gorm:"index"`
	Contract        *Contract `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
	SafeID          *uint     `json:"safeId,omitempty"`
	Safe            *Safe     `json:"safe,omitempty" gorm:"foreignKey:SafeID"`
	TransactionType string    `json:"transactionType" gorm:"not null;index"`
	Amount          float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	PartnerShare    float64   `json:"partnerShare" gorm:"type:numeric(5,2);default:0"`
	RunningBalance  float64   `json:"runningBalance" gorm:"type:numeric(12,2)"`
	EntryDate       time.Time `json:"entryDate" gorm:"type:date;not null;index"`
	Description     string    `json:"description"`
}

func (PartnerDailyTransaction) TableName() string { return "partner_daily_transactions" }

// PartnerLedger — дневная сводка по партнеру: не более одной строки на пару
// (партнер, дата), уникальность обеспечена составным индексом.
type PartnerLedger struct {
	gorm.Model
	PartnerID        uint      `json:"partnerId" gorm:"not null;uniqueIndex:idx_partner_day"`
	Partner          *Partner  `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	EntryDate        time.Time `json:"entryDate" gorm:"type:date;not null;uniqueIndex:idx_partner_day"`
	TotalIncome      float64   `json:"totalIncome" gorm:"type:numeric(12,2);default:0"`
	TotalExpense     float64   `json:"totalExpense" gorm:"type:numeric(12,2);default:0"`
	NetBalance       float64   `json:"netBalance" gorm:"type:numeric(12,2);default:0"`
	TransactionCount int64     `json:"transactionCount" gorm:"default:0"`
}

func (PartnerLedger) TableName() string { return "partner_ledgers" }
