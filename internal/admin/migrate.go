// aqarat-crm/internal/admin/migrate.go

// Package admin реализует одноразовые административные операции:
// миграции схемы, наполнение тестовыми данными, настройки по умолчанию,
// обслуживание БД и управление резервными копиями.
package admin

import (
	"aqarat-crm/models"

	"gorm.io/gorm"
)

// allModels — полный список моделей для миграции схемы.
func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Customer{},
		&models.Unit{},
		&models.Broker{},
		&models.InstallmentPlan{},
		&models.PlanLine{},
		&models.Contract{},
		&models.Installment{},
		&models.Safe{},
		&models.Transfer{},
		&models.Partner{},
		&models.PartnerDebt{},
		&models.PartnerDailyTransaction{},
		&models.PartnerLedger{},
		&models.AuditLog{},
		&models.Setting{},
	}
}

// Migrate приводит схему БД к текущим моделям.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels()...)
}

// Reset удаляет все таблицы приложения и создает схему заново.
// Использовать только на тестовых стендах.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(allModels()...); err != nil {
		return err
	}
	return Migrate(db)
}
