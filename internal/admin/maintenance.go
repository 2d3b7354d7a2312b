// aqarat-crm/internal/admin/maintenance.go

package admin

import (
	"fmt"

	"aqarat-crm/models"

	"gorm.io/gorm"
)

// Result — единый формат ответа административных операций.
// Ошибки файловой системы и БД не пробрасываются наружу как паники,
// а упаковываются в Result.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TableCount — количество строк в одной таблице.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// DBInfo возвращает сводку по основным таблицам приложения.
func DBInfo(db *gorm.DB) ([]TableCount, error) {
	named := []struct {
		name  string
		model interface{}
	}{
		{"customers", &models.Customer{}},
		{"units", &models.Unit{}},
		{"brokers", &models.Broker{}},
		{"contracts", &models.Contract{}},
		{"installments", &models.Installment{}},
		{"safes", &models.Safe{}},
		{"transfers", &models.Transfer{}},
		{"partners", &models.Partner{}},
		{"partner_daily_transactions", &models.PartnerDailyTransaction{}},
		{"partner_ledgers", &models.PartnerLedger{}},
		{"audit_logs", &models.AuditLog{}},
		{"settings", &models.Setting{}},
	}

	counts := make([]TableCount, 0, len(named))
	for _, n := range named {
		var rows int64
		if err := db.Model(n.model).Count(&rows).Error; err != nil {
			return nil, err
		}
		counts = append(counts, TableCount{Table: n.name, Rows: rows})
	}
	return counts, nil
}

// Vacuum запускает VACUUM — команда одинаково называется
// в postgres и sqlite.
func Vacuum(db *gorm.DB) Result {
	if err := db.Exec("VACUUM").Error; err != nil {
		return Result{Success: false, Message: fmt.Sprintf("VACUUM завершился с ошибкой: %v", err)}
	}
	return Result{Success: true, Message: "VACUUM выполнен"}
}
