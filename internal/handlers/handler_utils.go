package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseUintParam разбирает числовой параметр пути.
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// getUserIDFromContext достает ID пользователя, положенный AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (uint, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, fmt.Errorf("user_id отсутствует в контексте")
	}
	id, ok := v.(uint)
	if !ok {
		return 0, fmt.Errorf("user_id имеет неверный тип")
	}
	return id, nil
}

// parseDate разбирает дату формы в формате YYYY-MM-DD.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parseOptionalDate — то же, но пустая строка допустима.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
