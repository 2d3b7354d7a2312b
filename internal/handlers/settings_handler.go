package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// ListSettingsHandler возвращает все настройки компании.
func ListSettingsHandler(c *gin.Context) {
	var settings []models.Setting
	if err := config.DB.Order("key asc").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить настройки"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// UpdateSettingsHandler обновляет настройки пакетом: upsert по ключу.
func UpdateSettingsHandler(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ожидается объект ключ-значение"})
		return
	}
	if len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пустой набор настроек"})
		return
	}

	settings := make([]models.Setting, 0, len(input))
	for key, value := range input {
		settings = append(settings, models.Setting{Key: key, Value: value})
	}

	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить настройки: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Настройки сохранены"})
}
