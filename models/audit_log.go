// aqarat-crm/models/audit_log.go
package models

import "gorm.io/gorm"

// AuditLog — запись журнала действий пользователя над сущностями.
type AuditLog struct {
	gorm.Model
	UserID   uint   `json:"userId" gorm:"index"`
	User     *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action   string `json:"action" gorm:"not null"` // create, update, delete
	Entity   string `json:"entity" gorm:"not null;index"`
	EntityID uint   `json:"entityId"`
	Details  string `json:"details"`
}

func (AuditLog) TableName() string { return "audit_logs" }
