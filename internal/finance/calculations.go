// aqarat-crm/internal/finance/calculations.go

// Package finance содержит расчеты по договорам и партнерскую бухгалтерию.
// Функции этого пакета только читают данные и ничего не меняют в БД.
package finance

import (
	"time"

	"aqarat-crm/models"

	"gorm.io/gorm"
)

// InstallmentStatus вычисляет статус платежа на заданную дату.
// Наличие paid_date всегда имеет приоритет над сравнением дат:
// платеж, отмеченный оплаченным, остается paid даже при просроченном сроке.
func InstallmentStatus(inst *models.Installment, today time.Time) string {
	if inst.PaidDate != nil {
		return models.InstallmentStatusPaid
	}
	if inst.DueDate.Before(today.Truncate(24 * time.Hour)) {
		return models.InstallmentStatusOverdue
	}
	return models.InstallmentStatusPending
}

// RemainingResult — остаток по договору.
type RemainingResult struct {
	TotalPaid           float64 `json:"totalPaid"`
	RemainingAmount     float64 `json:"remainingAmount"`
	RemainingPercentage float64 `json:"remainingPercentage"`
}

// Remaining считает остаток к оплате по договору.
// Пока график платежей не сгенерирован, оплаченным считается первый взнос.
// Деление на ноль исключено: при нулевой цене процент равен нулю.
func Remaining(contract *models.Contract) RemainingResult {
	totalPaid := contract.DownPayment
	if len(contract.Installments) > 0 {
		totalPaid = 0
		for _, inst := range contract.Installments {
			totalPaid += inst.PaidAmount
		}
	}

	remaining := contract.FinalPrice - totalPaid

	var pct float64
	if contract.FinalPrice != 0 {
		pct = remaining / contract.FinalPrice * 100
	}

	return RemainingResult{
		TotalPaid:           totalPaid,
		RemainingAmount:     remaining,
		RemainingPercentage: pct,
	}
}

// CollectionPercentage — процент собранных средств по договору.
// Возвращает 0, если цена нулевая или платежей еще не было; никогда не
// паникует и не делит на ноль.
func CollectionPercentage(contract *models.Contract) float64 {
	if contract.FinalPrice == 0 {
		return 0
	}

	var totalPaid float64
	for _, inst := range contract.Installments {
		totalPaid += inst.PaidAmount
	}
	if totalPaid == 0 {
		return 0
	}

	return totalPaid / contract.FinalPrice * 100
}

// SalesSummary — сводка продаж по всем действующим договорам.
type SalesSummary struct {
	TotalSales         float64 `json:"totalSales"`
	TotalContracts     int64   `json:"totalContracts"`
	ActiveContracts    int64   `json:"activeContracts"`
	CompletedContracts int64   `json:"completedContracts"`
	CancelledContracts int64   `json:"cancelledContracts"`
}

// TotalSales агрегирует суммы и количество договоров по статусам.
// Мягко удаленные договоры не учитываются.
func TotalSales(db *gorm.DB) (SalesSummary, error) {
	var summary SalesSummary

	err := db.Model(&models.Contract{}).
		Select(`
			COALESCE(SUM(final_price), 0) as total_sales,
			COUNT(*) as total_contracts,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) as active_contracts,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) as completed_contracts,
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) as cancelled_contracts
		`).
		Scan(&summary).Error

	return summary, err
}

// UnitCountsResult — количество объектов по статусам.
type UnitCountsResult struct {
	TotalUnits     int64 `json:"totalUnits"`
	AvailableUnits int64 `json:"availableUnits"`
	ReservedUnits  int64 `json:"reservedUnits"`
	SoldUnits      int64 `json:"soldUnits"`
}

// UnitCounts считает объекты недвижимости по статусам.
func UnitCounts(db *gorm.DB) (UnitCountsResult, error) {
	var counts UnitCountsResult

	err := db.Model(&models.Unit{}).
		Select(`
			COUNT(*) as total_units,
			COALESCE(SUM(CASE WHEN status = 'available' THEN 1 ELSE 0 END), 0) as available_units,
			COALESCE(SUM(CASE WHEN status = 'reserved' THEN 1 ELSE 0 END), 0) as reserved_units,
			COALESCE(SUM(CASE WHEN status = 'sold' THEN 1 ELSE 0 END), 0) as sold_units
		`).
		Scan(&counts).Error

	return counts, err
}

// KPISnapshot — сводка показателей для главной панели.
type KPISnapshot struct {
	TotalSales         float64 `json:"totalSales"`
	TotalCustomers     int64   `json:"totalCustomers"`
	TotalUnits         int64   `json:"totalUnits"`
	AvailableUnits     int64   `json:"availableUnits"`
	ReservedUnits      int64   `json:"reservedUnits"`
	SoldUnits          int64   `json:"soldUnits"`
	TotalContracts     int64   `json:"totalContracts"`
	ActiveContracts    int64   `json:"activeContracts"`
	CompletedContracts int64   `json:"completedContracts"`
}

// DashboardKPIs собирает сводку панели из агрегатов по таблицам.
func DashboardKPIs(db *gorm.DB) (KPISnapshot, error) {
	var snapshot KPISnapshot

	sales, err := TotalSales(db)
	if err != nil {
		return snapshot, err
	}

	units, err := UnitCounts(db)
	if err != nil {
		return snapshot, err
	}

	var customers int64
	if err := db.Model(&models.Customer{}).Count(&customers).Error; err != nil {
		return snapshot, err
	}

	snapshot = KPISnapshot{
		TotalSales:         sales.TotalSales,
		TotalCustomers:     customers,
		TotalUnits:         units.TotalUnits,
		AvailableUnits:     units.AvailableUnits,
		ReservedUnits:      units.ReservedUnits,
		SoldUnits:          units.SoldUnits,
		TotalContracts:     sales.TotalContracts,
		ActiveContracts:    sales.ActiveContracts,
		CompletedContracts: sales.CompletedContracts,
	}
	return snapshot, nil
}
