// aqarat-crm/models/safe.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Safe представляет кассу (сейф) — именованный денежный счет казначейства.
// MaxBalance — справочный лимит, на уровне схемы не принуждается.
type Safe struct {
	gorm.Model
	Name       string  `json:"name" gorm:"unique;not null"`
	Balance    float64 `json:"balance" gorm:"type:numeric(12,2);default:0"`
	MaxBalance float64 `json:"maxBalance" gorm:"type:numeric(12,2);default:0"`
	Notes      string  `json:"notes"`
}

func (Safe) TableName() string { return "safes" }

// Transfer представляет перевод средств между двумя разными кассами.
// FromSafeID == ToSafeID отклоняется валидацией до записи.
type Transfer struct {
	gorm.Model
	FromSafeID   uint      `json:"fromSafeId" gorm:"not null;index"`
	FromSafe     *Safe     `json:"fromSafe,omitempty" gorm:"foreignKey:FromSafeID"`
	ToSafeID     uint      `json:"toSafeId" gorm:"not null;index"`
	ToSafe       *Safe     `json:"toSafe,omitempty" gorm:"foreignKey:ToSafeID"`
	Amount       float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	TransferDate time.Time `json:"transferDate" gorm:"not null"`
	Notes        string    `json:"notes"`
}

func (Transfer) TableName() string { return "transfers" }
