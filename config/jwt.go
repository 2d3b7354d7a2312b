// aqarat-crm/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

// LoadJWTKey читает секрет для подписи токенов из окружения.
func LoadJWTKey() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Критическая ошибка: переменная окружения JWT_SECRET не установлена.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
