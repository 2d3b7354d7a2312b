package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"aqarat-crm/config"
	"aqarat-crm/internal/admin"
	"aqarat-crm/pkg/logging"

	"github.com/joho/godotenv"
)

const usage = `Утилита администрирования aqarat-crm.

Команды:
  setup                    создать/обновить схему БД и настройки по умолчанию
  reset                    пересоздать схему БД (все данные будут удалены!)
  seed                     заполнить базу демонстрационными данными
  settings                 создать настройки по умолчанию (без перезаписи)
  db-info                  показать количество записей по таблицам
  vacuum                   выполнить VACUUM
  backup create            создать резервную копию файла БД
  backup list              показать резервные копии
  backup restore <имя>     восстановить БД из копии
  backup delete <имя>      удалить копию
  backup cleanup <N>       оставить N последних копий
  backup schedule [режим]  показать или задать расписание копирования
                           (off, hourly, daily, weekly)`

func main() {
	_ = godotenv.Load()
	logging.Setup()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "setup":
		config.ConnectDB()
		must(admin.Migrate(config.DB), "миграция схемы")
		must(admin.CreateDefaultSettings(config.DB), "настройки по умолчанию")
		slog.Info("База данных готова к работе")
	case "reset":
		config.ConnectDB()
		must(admin.Reset(config.DB), "пересоздание схемы")
		must(admin.CreateDefaultSettings(config.DB), "настройки по умолчанию")
		slog.Info("Схема пересоздана")
	case "seed":
		config.ConnectDB()
		must(admin.Migrate(config.DB), "миграция схемы")
		must(admin.SeedSampleData(config.DB), "заполнение демо-данными")
		slog.Info("Демонстрационные данные загружены")
	case "settings":
		config.ConnectDB()
		must(admin.CreateDefaultSettings(config.DB), "настройки по умолчанию")
		slog.Info("Настройки по умолчанию созданы")
	case "db-info":
		config.ConnectDB()
		counts, err := admin.DBInfo(config.DB)
		must(err, "сбор статистики")
		for _, tc := range counts {
			fmt.Printf("%-28s %d\n", tc.Table, tc.Rows)
		}
	case "vacuum":
		config.ConnectDB()
		report(admin.Vacuum(config.DB))
	case "backup":
		runBackup(os.Args[2:])
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func runBackup(args []string) {
	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(2)
	}

	manager := admin.NewBackupManager()
	// Файловые копии работают только с sqlite-базой
	dbPath := strings.TrimPrefix(os.Getenv("DB_URL"), "file:")

	switch args[0] {
	case "create":
		report(manager.Create(dbPath))
	case "list":
		backups, err := manager.List()
		must(err, "чтение списка копий")
		if len(backups) == 0 {
			fmt.Println("Резервных копий нет")
			return
		}
		for _, b := range backups {
			fmt.Printf("%-40s %10d байт  %s\n", b.Name, b.SizeBytes, b.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	case "restore":
		if len(args) < 2 {
			fmt.Println("Укажите имя копии: backup restore <имя>")
			os.Exit(2)
		}
		report(manager.Restore(args[1], dbPath))
	case "delete":
		if len(args) < 2 {
			fmt.Println("Укажите имя копии: backup delete <имя>")
			os.Exit(2)
		}
		report(manager.Delete(args[1]))
	case "cleanup":
		if len(args) < 2 {
			fmt.Println("Укажите число копий: backup cleanup <N>")
			os.Exit(2)
		}
		keep, err := strconv.Atoi(args[1])
		if err != nil || keep < 0 {
			fmt.Println("N должно быть неотрицательным числом")
			os.Exit(2)
		}
		report(manager.Cleanup(keep))
	case "schedule":
		config.ConnectDB()
		if len(args) < 2 {
			schedule, err := admin.GetBackupSchedule(config.DB)
			must(err, "чтение расписания")
			fmt.Printf("Расписание резервного копирования: %s\n", schedule)
			return
		}
		report(admin.SetBackupSchedule(config.DB, args[1]))
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func must(err error, action string) {
	if err != nil {
		slog.Error("Команда завершилась с ошибкой", "action", action, "error", err)
		os.Exit(1)
	}
}

func report(result admin.Result) {
	fmt.Println(result.Message)
	if !result.Success {
		os.Exit(1)
	}
}
