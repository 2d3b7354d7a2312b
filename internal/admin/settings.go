// aqarat-crm/internal/admin/settings.go

package admin

import (
	"errors"
	"fmt"
	"strings"

	"aqarat-crm/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultSettings — стартовые настройки компании.
var defaultSettings = []models.Setting{
	{Key: models.SettingCompanyName, Value: "Аль-Акарат"},
	{Key: models.SettingCompanyPhone, Value: "+201000000000"},
	{Key: models.SettingCompanyEmail, Value: "info@aqarat.example"},
	{Key: models.SettingDefaultCurrency, Value: "EGP"},
	{Key: models.SettingDefaultInstallmentType, Value: "monthly"},
	{Key: models.SettingDefaultCommissionRate, Value: "2.5"},
	{Key: models.SettingBackupSchedule, Value: "off"},
}

// backupSchedules — допустимые значения расписания резервного копирования.
// Само копирование запускает внешний планировщик (cron), команда хранит
// выбранный режим.
var backupSchedules = []string{"off", "hourly", "daily", "weekly"}

// CreateDefaultSettings создает настройки по умолчанию.
// Уже существующие ключи не перезаписываются.
func CreateDefaultSettings(db *gorm.DB) error {
	for _, s := range defaultSettings {
		setting := s
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&setting).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetBackupSchedule возвращает текущий режим резервного копирования.
// Если настройка еще не создана, считается, что копирование выключено.
func GetBackupSchedule(db *gorm.DB) (string, error) {
	var setting models.Setting
	err := db.Where("key = ?", models.SettingBackupSchedule).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "off", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// SetBackupSchedule сохраняет режим резервного копирования.
func SetBackupSchedule(db *gorm.DB, value string) Result {
	value = strings.ToLower(strings.TrimSpace(value))
	valid := false
	for _, s := range backupSchedules {
		if value == s {
			valid = true
			break
		}
	}
	if !valid {
		return Result{Success: false, Message: fmt.Sprintf("Недопустимое расписание %q, доступны: %s", value, strings.Join(backupSchedules, ", "))}
	}

	setting := models.Setting{Key: models.SettingBackupSchedule, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Не удалось сохранить расписание: %v", err)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Расписание резервного копирования: %s", value)}
}
