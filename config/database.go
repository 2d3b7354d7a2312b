// aqarat-crm/config/database.go

package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB подключается к базе данных по DB_URL.
// Для локальной разработки и админ-команд поддерживается sqlite:
// DB_URL вида "file:aqarat.db" или путь с расширением .db.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		// Без базы данных приложение работать не может
		slog.Error("Критическая ошибка: переменная окружения DB_URL не установлена.")
		os.Exit(1)
	}

	db, err := gorm.Open(openDialector(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Ошибка подключения к БД", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Успешное подключение к базе данных!")
}

func openDialector(dsn string) gorm.Dialector {
	if len(dsn) > 5 && dsn[:5] == "file:" {
		return sqlite.Open(dsn)
	}
	if len(dsn) > 3 && dsn[len(dsn)-3:] == ".db" {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}
