// aqarat-crm/internal/finance/ledger.go

package finance

import (
	"time"

	"aqarat-crm/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ledgerTotals — промежуточный результат агрегации операций за день.
type ledgerTotals struct {
	TotalIncome      float64
	TotalExpense     float64
	TransactionCount int64
}

// DayBounds нормализует дату к границам суток в UTC.
// Сравнение по диапазону, а не по равенству даты, чтобы запрос одинаково
// работал в postgres и sqlite.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// RebuildLedgerEntry пересобирает дневную сводку партнера из сырых операций
// и сохраняет ее upsert-ом: на пару (партнер, дата) существует не более
// одной строки, повторные вызовы лишь обновляют агрегаты.
//
// RunningBalance на самих операциях — снимок, записанный при создании
// операции; здесь он намеренно не пересчитывается.
func RebuildLedgerEntry(db *gorm.DB, partnerID uint, day time.Time) (*models.PartnerLedger, error) {
	start, end := DayBounds(day)

	var totals ledgerTotals
	err := db.Model(&models.PartnerDailyTransaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0) as total_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0) as total_expense,
			COUNT(*) as transaction_count
		`).
		Where("partner_id = ? AND entry_date >= ? AND entry_date < ?", partnerID, start, end).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	entry := models.PartnerLedger{
		PartnerID:        partnerID,
		EntryDate:        start,
		TotalIncome:      totals.TotalIncome,
		TotalExpense:     totals.TotalExpense,
		NetBalance:       totals.TotalIncome - totals.TotalExpense,
		TransactionCount: totals.TransactionCount,
	}

	// deleted_at входит в список присваиваний: уникальный индекс держит и
	// мягко удаленную строку, пересборка должна вернуть ее к жизни.
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "partner_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_income", "total_expense", "net_balance", "transaction_count", "updated_at", "deleted_at",
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	// После upsert перечитываем строку, чтобы вернуть актуальный ID
	var saved models.PartnerLedger
	if err := db.Where("partner_id = ? AND entry_date = ?", partnerID, start).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// LedgerRange возвращает дневные сводки партнера за период, новые сверху.
func LedgerRange(db *gorm.DB, partnerID uint, from, to time.Time) ([]models.PartnerLedger, error) {
	var entries []models.PartnerLedger
	start, _ := DayBounds(from)
	_, end := DayBounds(to)

	err := db.Where("partner_id = ? AND entry_date >= ? AND entry_date < ?", partnerID, start, end).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}
