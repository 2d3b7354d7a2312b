package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware записывает изменяющие запросы в журнал действий.
// Журнал вторичен по отношению к самой операции: ошибка записи только
// логируется и не ломает ответ.
func AuditMiddleware(entity string) gin.HandlerFunc {
	actions := map[string]string{
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodDelete: "delete",
	}

	return func(c *gin.Context) {
		c.Next()

		action, ok := actions[c.Request.Method]
		if !ok || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var userID uint
		if v, exists := c.Get("user_id"); exists {
			if id, ok := v.(uint); ok {
				userID = id
			}
		}

		var entityID uint
		if idStr := c.Param("id"); idStr != "" {
			if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
				entityID = uint(id)
			}
		}

		entry := models.AuditLog{
			UserID:   userID,
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			Details:  strings.TrimPrefix(c.FullPath(), "/api"),
		}
		if err := config.DB.Create(&entry).Error; err != nil {
			slog.Error("Не удалось записать журнал действий", "error", err, "entity", entity)
		}
	}
}
