// aqarat-crm/internal/admin/backup.go

package admin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BackupManager управляет файловыми резервными копиями базы данных
// (режим sqlite). Для postgres копии снимаются средствами СУБД, и эти
// операции вернут пояснение в Result.
type BackupManager struct {
	Dir string
}

// BackupInfo — описание одного файла резервной копии.
type BackupInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBackupManager создает менеджер с каталогом из BACKUP_DIR
// (по умолчанию ./backups).
func NewBackupManager() *BackupManager {
	dir := os.Getenv("BACKUP_DIR")
	if dir == "" {
		dir = "backups"
	}
	return &BackupManager{Dir: dir}
}

// Create копирует файл базы данных в каталог резервных копий.
func (m *BackupManager) Create(dbPath string) Result {
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Не удалось создать каталог копий: %v", err)}
	}

	src, err := os.Open(dbPath)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Файл базы данных недоступен: %v", err)}
	}
	defer src.Close()

	name := fmt.Sprintf("backup_%s_%s.db", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	dst, err := os.Create(filepath.Join(m.Dir, name))
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Не удалось создать файл копии: %v", err)}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Копирование прервано: %v", err)}
	}

	return Result{Success: true, Message: fmt.Sprintf("Резервная копия создана: %s", name)}
}

// List возвращает имеющиеся копии, новые первыми.
func (m *BackupManager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.Dir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, err
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "backup_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Name:      e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore заменяет файл базы данных выбранной копией.
func (m *BackupManager) Restore(name, dbPath string) Result {
	// Берем только имя файла, чтобы исключить выход из каталога копий
	src, err := os.Open(filepath.Join(m.Dir, filepath.Base(name)))
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Копия не найдена: %v", err)}
	}
	defer src.Close()

	dst, err := os.Create(dbPath)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Файл базы данных недоступен для записи: %v", err)}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Восстановление прервано: %v", err)}
	}

	return Result{Success: true, Message: fmt.Sprintf("База восстановлена из %s", filepath.Base(name))}
}

// Delete удаляет одну копию по имени.
func (m *BackupManager) Delete(name string) Result {
	if err := os.Remove(filepath.Join(m.Dir, filepath.Base(name))); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Не удалось удалить копию: %v", err)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Копия удалена: %s", filepath.Base(name))}
}

// Cleanup оставляет keep свежих копий и удаляет остальные.
func (m *BackupManager) Cleanup(keep int) Result {
	if keep < 0 {
		keep = 0
	}

	backups, err := m.List()
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Не удалось прочитать каталог копий: %v", err)}
	}

	removed := 0
	for i := keep; i < len(backups); i++ {
		if err := os.Remove(filepath.Join(m.Dir, backups[i].Name)); err != nil {
			return Result{Success: false, Message: fmt.Sprintf("Удалено %d, затем ошибка: %v", removed, err)}
		}
		removed++
	}

	return Result{Success: true, Message: fmt.Sprintf("Удалено старых копий: %d, оставлено: %d", removed, min(keep, len(backups)))}
}
