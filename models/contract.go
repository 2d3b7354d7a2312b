package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы договора купли-продажи.
const (
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"
)

// Contract описывает договор купли-продажи объекта недвижимости.
// FinalPrice = TotalPrice - Discount; соотношение проверяется на уровне
// валидации форм, а не схемы.
type Contract struct {
	ID        uint           `gorm:"primaryKey"                  json:"ID"`
	CreatedAt time.Time      `                                   json:"CreatedAt"`
	UpdatedAt time.Time      `                                   json:"UpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"                       json:"DeletedAt"`

	ContractNumber    string     `gorm:"column:contract_number;uniqueIndex" json:"contractNumber"`
	StartDate         *time.Time `gorm:"column:start_date"                  json:"startDate,omitempty"`
	TotalPrice        float64    `gorm:"column:total_price;type:numeric(12,2)"            json:"totalPrice"`
	Discount          float64    `gorm:"column:discount;type:numeric(12,2);default:0"     json:"discount"`
	FinalPrice        float64    `gorm:"column:final_price;type:numeric(12,2)"            json:"finalPrice"`
	DownPayment       float64    `gorm:"column:down_payment;type:numeric(12,2);default:0" json:"downPayment"`
	InstallmentCount  int        `gorm:"column:installment_count;default:0"               json:"installmentCount"`
	InstallmentAmount float64    `gorm:"column:installment_amount;type:numeric(12,2);default:0" json:"installmentAmount"`
	Status            string     `gorm:"column:status;default:active;index" json:"status"`
	Comment           string     `gorm:"column:comment"                     json:"comment"`

	// Связи
	CustomerID uint      `gorm:"column:customer_id;index" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"    json:"customer,omitempty"`

	UnitID uint  `gorm:"column:unit_id;index" json:"unitId"`
	Unit   *Unit `gorm:"foreignKey:UnitID"    json:"unit,omitempty"`

	BrokerID *uint   `gorm:"column:broker_id"    json:"brokerId,omitempty"`
	Broker   *Broker `gorm:"foreignKey:BrokerID" json:"broker,omitempty"`

	ManagerID uint  `gorm:"column:manager_id;index" json:"managerId"`
	Manager   *User `gorm:"foreignKey:ManagerID"    json:"manager,omitempty"`

	// Необязательная связь с шаблоном рассрочки
	PlanID *uint            `gorm:"column:plan_id"    json:"planId,omitempty"`
	Plan   *InstallmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`

	Installments []Installment `gorm:"foreignKey:ContractID" json:"installments,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
