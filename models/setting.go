// aqarat-crm/models/setting.go
package models

import "gorm.io/gorm"

// Ключи настроек, создаваемых админ-командой settings.
const (
	SettingCompanyName            = "company_name"
	SettingCompanyPhone           = "company_phone"
	SettingCompanyEmail           = "company_email"
	SettingDefaultCurrency        = "default_currency"
	SettingDefaultInstallmentType = "default_installment_type"
	SettingDefaultCommissionRate  = "default_commission_rate"
	SettingBackupSchedule         = "backup_schedule"
)

// Setting — пара ключ/значение для настроек компании.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
}

func (Setting) TableName() string { return "settings" }
