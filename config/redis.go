// aqarat-crm/config/redis.go
package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RDB доступен всему приложению; nil означает, что кэширование выключено
// и все читатели обязаны идти в БД напрямую.
var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis подключает кэш по REDIS_ADDR (опционально REDIS_PASSWORD
// и REDIS_DB). Без адреса или при недоступном сервере приложение
// продолжает работать без кэша.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		slog.Warn("REDIS_ADDR не задан, кэширование отключено")
		return
	}

	dbIndex := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			dbIndex = parsed
		}
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbIndex,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Redis недоступен, кэширование отключено", "error", err, "addr", addr)
		RDB = nil
		return
	}

	slog.Info("Успешное подключение к Redis", "addr", addr, "db", dbIndex)
}
