package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFoundHandler — единый ответ для неизвестных маршрутов.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Маршрут не найден"})
}

// MethodNotAllowedHandler — единый ответ для неподдерживаемых методов.
func MethodNotAllowedHandler(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Метод не поддерживается"})
}

// RecoveryHandler логирует панику и отвечает 500 без деталей.
func RecoveryHandler(c *gin.Context, recovered interface{}) {
	slog.Error("Паника в обработчике", "panic", recovered, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера"})
}
