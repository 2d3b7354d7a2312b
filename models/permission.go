// File: models/permission.go
package models

import "aqarat-crm/config"

// Permission представляет модель права доступа в базе данных.
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"` // Категория для группировки (e.g., "Договоры", "Казна")
}

// GetUserPermissions получает все уникальные права доступа для пользователя через его роли.
func GetUserPermissions(userID uint) ([]Permission, error) {
	var user User
	db := config.DB

	// Находим пользователя и предзагружаем его роли, а также права доступа для каждой роли
	if err := db.Preload("Roles.Permissions").First(&user, userID).Error; err != nil {
		return nil, err
	}

	// Используем карту для сбора уникальных прав доступа, чтобы избежать дубликатов
	permissionMap := make(map[uint]Permission)
	for _, role := range user.Roles {
		for _, permission := range role.Permissions {
			permissionMap[permission.ID] = permission
		}
	}

	permissions := make([]Permission, 0, len(permissionMap))
	for _, permission := range permissionMap {
		permissions = append(permissions, permission)
	}

	return permissions, nil
}
