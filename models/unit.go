// aqarat-crm/models/unit.go

package models

import "gorm.io/gorm"

// Статусы объекта недвижимости.
const (
	UnitStatusAvailable = "available" // свободен
	UnitStatusReserved  = "reserved"  // забронирован
	UnitStatusSold      = "sold"      // продан
)

// Unit представляет объект недвижимости (квартиру, магазин, офис).
type Unit struct {
	gorm.Model
	Code     string  `json:"code" gorm:"uniqueIndex;not null"` // внутренний номер объекта
	UnitType string  `json:"unitType"`                         // apartment, shop, office, garage
	Building string  `json:"building"`
	Floor    int     `json:"floor"`
	Area     float64 `json:"area" gorm:"type:numeric(10,2)"` // м²
	Price    float64 `json:"price" gorm:"type:numeric(12,2)"`
	Status   string  `json:"status" gorm:"default:available;index"`
	Notes    string  `json:"notes"`
}

func (Unit) TableName() string { return "units" }
