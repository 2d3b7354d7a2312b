package finance

import (
	"testing"
	"time"

	"aqarat-crm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildLedgerEntryAggregates(t *testing.T) {
	db := setupTestDB(t)
	day := date(2025, time.June, 1)

	partner := models.Partner{FullName: "Мохамед Али", SharePercentage: 25}
	require.NoError(t, db.Create(&partner).Error)

	txs := []models.PartnerDailyTransaction{
		{PartnerID: partner.ID, TransactionType: models.PartnerTxIncome, Amount: 10000, RunningBalance: 10000, EntryDate: day},
		{PartnerID: partner.ID, TransactionType: models.PartnerTxIncome, Amount: 5000, RunningBalance: 15000, EntryDate: day},
		{PartnerID: partner.ID, TransactionType: models.PartnerTxExpense, Amount: 3000, RunningBalance: 12000, EntryDate: day},
		{PartnerID: partner.ID, TransactionType: models.PartnerTxClosing, Amount: 0, RunningBalance: 12000, EntryDate: day},
	}
	require.NoError(t, db.Create(&txs).Error)

	entry, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)

	assert.InDelta(t, 15000.0, entry.TotalIncome, 0.001)
	assert.InDelta(t, 3000.0, entry.TotalExpense, 0.001)
	assert.InDelta(t, 12000.0, entry.NetBalance, 0.001)
	assert.Equal(t, int64(4), entry.TransactionCount)
}

func TestRebuildLedgerEntryIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	day := date(2025, time.June, 2)

	partner := models.Partner{FullName: "Партнер"}
	require.NoError(t, db.Create(&partner).Error)

	require.NoError(t, db.Create(&models.PartnerDailyTransaction{
		PartnerID:       partner.ID,
		TransactionType: models.PartnerTxIncome,
		Amount:          7500,
		RunningBalance:  7500,
		EntryDate:       day,
	}).Error)

	// Повторные пересборки не должны плодить строки на одну пару (партнер, дата)
	for i := 0; i < 5; i++ {
		_, err := RebuildLedgerEntry(db, partner.ID, day)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.PartnerLedger{}).
		Where("partner_id = ?", partner.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRebuildLedgerEntryExcludesSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	day := date(2025, time.June, 3)

	partner := models.Partner{FullName: "Партнер"}
	require.NoError(t, db.Create(&partner).Error)

	keep := models.PartnerDailyTransaction{
		PartnerID: partner.ID, TransactionType: models.PartnerTxIncome,
		Amount: 2000, RunningBalance: 2000, EntryDate: day,
	}
	drop := models.PartnerDailyTransaction{
		PartnerID: partner.ID, TransactionType: models.PartnerTxIncome,
		Amount: 9000, RunningBalance: 11000, EntryDate: day,
	}
	require.NoError(t, db.Create(&keep).Error)
	require.NoError(t, db.Create(&drop).Error)
	require.NoError(t, db.Delete(&drop).Error)

	entry, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, entry.TotalIncome, 0.001)
	assert.Equal(t, int64(1), entry.TransactionCount)
}

func TestRebuildLedgerEntryUpdatesAfterNewTransactions(t *testing.T) {
	db := setupTestDB(t)
	day := date(2025, time.June, 4)

	partner := models.Partner{FullName: "Партнер"}
	require.NoError(t, db.Create(&partner).Error)

	require.NoError(t, db.Create(&models.PartnerDailyTransaction{
		PartnerID: partner.ID, TransactionType: models.PartnerTxIncome,
		Amount: 1000, RunningBalance: 1000, EntryDate: day,
	}).Error)

	first, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, first.NetBalance, 0.001)

	require.NoError(t, db.Create(&models.PartnerDailyTransaction{
		PartnerID: partner.ID, TransactionType: models.PartnerTxExpense,
		Amount: 400, RunningBalance: 600, EntryDate: day,
	}).Error)

	second, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)

	assert.InDelta(t, 600.0, second.NetBalance, 0.001)
	assert.Equal(t, first.ID, second.ID, "upsert должен обновлять ту же строку")
}

func TestRebuildLedgerEntryRevivesSoftDeletedRow(t *testing.T) {
	db := setupTestDB(t)
	day := date(2025, time.June, 5)

	partner := models.Partner{FullName: "Партнер"}
	require.NoError(t, db.Create(&partner).Error)

	require.NoError(t, db.Create(&models.PartnerDailyTransaction{
		PartnerID: partner.ID, TransactionType: models.PartnerTxIncome,
		Amount: 3000, RunningBalance: 3000, EntryDate: day,
	}).Error)

	first, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)

	// Мягкое удаление сводки оставляет строку под уникальным индексом
	require.NoError(t, db.Delete(&models.PartnerLedger{}, first.ID).Error)

	revived, err := RebuildLedgerEntry(db, partner.ID, day)
	require.NoError(t, err)

	assert.Equal(t, first.ID, revived.ID, "upsert должен оживить удаленную строку, а не падать")
	assert.InDelta(t, 3000.0, revived.TotalIncome, 0.001)

	var count int64
	require.NoError(t, db.Model(&models.PartnerLedger{}).
		Where("partner_id = ?", partner.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLedgerRange(t *testing.T) {
	db := setupTestDB(t)
	partner := models.Partner{FullName: "Партнер"}
	require.NoError(t, db.Create(&partner).Error)

	for d := 1; d <= 3; d++ {
		day := date(2025, time.July, d)
		require.NoError(t, db.Create(&models.PartnerDailyTransaction{
			PartnerID: partner.ID, TransactionType: models.PartnerTxIncome,
			Amount: float64(d * 100), RunningBalance: float64(d * 100), EntryDate: day,
		}).Error)
		_, err := RebuildLedgerEntry(db, partner.ID, day)
		require.NoError(t, err)
	}

	entries, err := LedgerRange(db, partner.ID, date(2025, time.July, 1), date(2025, time.July, 2))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	// Новые записи идут первыми
	assert.True(t, entries[0].EntryDate.After(entries[1].EntryDate))
}
