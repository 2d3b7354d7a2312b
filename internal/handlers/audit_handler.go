package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogsHandler возвращает журнал действий с фильтрами.
func ListAuditLogsHandler(c *gin.Context) {
	query := config.DB.Model(&models.AuditLog{}).Preload("User").Order("id desc")

	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var totalRows int64
	query.Count(&totalRows)

	var logs []models.AuditLog
	if err := query.Scopes(Paginate(c)).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить журнал"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, logs, totalRows))
}
