package main

import (
	"log/slog"
	"os"

	"aqarat-crm/config"
	"aqarat-crm/internal/admin"
	"aqarat-crm/internal/routes"
	"aqarat-crm/internal/validation"
	"aqarat-crm/pkg/logging"

	"github.com/joho/godotenv"
)

func main() {
	// .env опционален: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		slog.Debug("Файл .env не найден, используется окружение процесса")
	}

	logging.Setup()
	config.LoadJWTKey()
	config.ConnectDB()
	config.ConnectRedis()

	if err := admin.Migrate(config.DB); err != nil {
		slog.Error("Ошибка миграции схемы", "error", err)
		os.Exit(1)
	}

	validation.RegisterCustomValidators()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Сервер запускается", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
