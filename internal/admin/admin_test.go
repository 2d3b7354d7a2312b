package admin

import (
	"os"
	"path/filepath"
	"testing"

	"aqarat-crm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedSampleData(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedSampleData(db))

	var customers, units, contracts, installments, safes int64
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.Unit{}).Count(&units)
	db.Model(&models.Contract{}).Count(&contracts)
	db.Model(&models.Installment{}).Count(&installments)
	db.Model(&models.Safe{}).Count(&safes)

	assert.Equal(t, int64(3), customers)
	assert.Equal(t, int64(4), units)
	assert.Equal(t, int64(1), contracts)
	assert.Equal(t, int64(24), installments)
	assert.Equal(t, int64(2), safes)

	// Сводка партнера за день ровно одна
	var ledgers int64
	db.Model(&models.PartnerLedger{}).Count(&ledgers)
	assert.Equal(t, int64(1), ledgers)

	var ledger models.PartnerLedger
	require.NoError(t, db.First(&ledger).Error)
	assert.InDelta(t, 14583.33, ledger.TotalIncome, 0.001)
	assert.InDelta(t, 2500.0, ledger.TotalExpense, 0.001)
	assert.InDelta(t, 12083.33, ledger.NetBalance, 0.001)
	assert.Equal(t, int64(3), ledger.TransactionCount)
}

func TestCreateDefaultSettingsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, CreateDefaultSettings(db))
	// Повторный вызов не должен дублировать и перезаписывать ключи
	require.NoError(t, db.Model(&models.Setting{}).
		Where("key = ?", models.SettingCompanyName).
		Update("value", "Моя компания").Error)
	require.NoError(t, CreateDefaultSettings(db))

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.Equal(t, int64(7), count)

	var setting models.Setting
	require.NoError(t, db.Where("key = ?", models.SettingCompanyName).First(&setting).Error)
	assert.Equal(t, "Моя компания", setting.Value)
}

func TestBackupSchedule(t *testing.T) {
	db := setupTestDB(t)

	// Пока настройка не создана, копирование считается выключенным
	schedule, err := GetBackupSchedule(db)
	require.NoError(t, err)
	assert.Equal(t, "off", schedule)

	res := SetBackupSchedule(db, "daily")
	require.True(t, res.Success, res.Message)

	schedule, err = GetBackupSchedule(db)
	require.NoError(t, err)
	assert.Equal(t, "daily", schedule)

	// Повторная запись обновляет ключ, а не дублирует его
	res = SetBackupSchedule(db, "Weekly")
	require.True(t, res.Success, res.Message)

	var count int64
	db.Model(&models.Setting{}).Where("key = ?", models.SettingBackupSchedule).Count(&count)
	assert.Equal(t, int64(1), count)

	schedule, err = GetBackupSchedule(db)
	require.NoError(t, err)
	assert.Equal(t, "weekly", schedule)

	res = SetBackupSchedule(db, "каждый час")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Недопустимое расписание")
}

func TestDBInfoAndVacuum(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SeedSampleData(db))

	counts, err := DBInfo(db)
	require.NoError(t, err)

	byTable := map[string]int64{}
	for _, c := range counts {
		byTable[c.Table] = c.Rows
	}
	assert.Equal(t, int64(3), byTable["customers"])
	assert.Equal(t, int64(24), byTable["installments"])

	res := Vacuum(db)
	assert.True(t, res.Success)
}

func TestBackupLifecycle(t *testing.T) {
	dir := t.TempDir()
	m := &BackupManager{Dir: dir}

	dbFile := filepath.Join(t.TempDir(), "app.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite-data"), 0o644))

	res := m.Create(dbFile)
	require.True(t, res.Success, res.Message)

	backups, err := m.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)

	// Восстановление в новый путь
	restored := filepath.Join(t.TempDir(), "restored.db")
	res = m.Restore(backups[0].Name, restored)
	require.True(t, res.Success, res.Message)
	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, "sqlite-data", string(data))

	res = m.Delete(backups[0].Name)
	assert.True(t, res.Success)

	backups, err = m.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupFailuresReturnStructuredResult(t *testing.T) {
	m := &BackupManager{Dir: t.TempDir()}

	// Отсутствующий файл БД — не паника, а Result с описанием
	res := m.Create(filepath.Join(t.TempDir(), "missing.db"))
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)

	res = m.Restore("no-such-backup.db", filepath.Join(t.TempDir(), "out.db"))
	assert.False(t, res.Success)

	res = m.Delete("no-such-backup.db")
	assert.False(t, res.Success)
}

func TestBackupCleanupKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	m := &BackupManager{Dir: dir}

	dbFile := filepath.Join(t.TempDir(), "app.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("x"), 0o644))

	for i := 0; i < 4; i++ {
		res := m.Create(dbFile)
		require.True(t, res.Success, res.Message)
	}

	res := m.Cleanup(2)
	require.True(t, res.Success, res.Message)

	backups, err := m.List()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}
