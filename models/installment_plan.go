// models/installment_plan.go

package models

import "gorm.io/gorm"

// InstallmentPlan представляет шаблон рассрочки: набор строк с формулами,
// по которым для договора генерируется график платежей.
type InstallmentPlan struct {
	gorm.Model
	Name  string     `json:"name"`
	Lines []PlanLine `json:"lines" gorm:"foreignKey:PlanID"`
}

// PlanLine — отдельная строка шаблона. MonthOffset отсчитывается от даты
// договора; Formula — выражение govaluate над параметрами суммы.
type PlanLine struct {
	gorm.Model
	PlanID      uint   `json:"plan_id"`
	MonthOffset int    `json:"month_offset"`
	Day         int    `json:"day"`
	Formula     string `json:"formula"`
}

// TableName задает имя таблицы для GORM.
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

// TableName задает имя таблицы для GORM.
func (PlanLine) TableName() string {
	return "plan_lines"
}
