// internal/handlers/path.go
package handlers

import (
	"errors"
	"os"
)

// reportsBaseDir возвращает базовую директорию для архива сформированных отчётов.
// Если переменная окружения REPORTS_DIR не задана — используется ./storage/reports.
func reportsBaseDir() string {
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		return v
	}
	return "./storage/reports"
}

// ensureDir гарантирует существование директории.
// Если путь существует и это файл — вернёт ошибку.
func ensureDir(path string) error {
	if path == "" {
		return errors.New("empty dir path")
	}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errors.New("path exists and is not a directory")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(path, 0o755)
}
