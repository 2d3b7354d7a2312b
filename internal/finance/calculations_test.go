package finance

import (
	"testing"
	"time"

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

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Unit{},
		&models.Contract{},
		&models.Installment{},
		&models.Partner{},
		&models.PartnerDailyTransaction{},
		&models.PartnerLedger{},
	)
	require.NoError(t, err)

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInstallmentStatus(t *testing.T) {
	today := date(2025, time.March, 15)
	paidAt := date(2025, time.January, 10)

	tests := []struct {
		name string
		inst models.Installment
		want string
	}{
		{
			name: "due in the future is pending",
			inst: models.Installment{DueDate: date(2025, time.April, 1)},
			want: models.InstallmentStatusPending,
		},
		{
			name: "due today is pending",
			inst: models.Installment{DueDate: today},
			want: models.InstallmentStatusPending,
		},
		{
			name: "past due without payment is overdue",
			inst: models.Installment{DueDate: date(2025, time.February, 1)},
			want: models.InstallmentStatusOverdue,
		},
		{
			name: "paid date wins over overdue comparison",
			inst: models.Installment{DueDate: date(2025, time.February, 1), PaidDate: &paidAt},
			want: models.InstallmentStatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InstallmentStatus(&tt.inst, today))
		})
	}
}

func TestRemainingRoundTrip(t *testing.T) {
	contract := models.Contract{
		FinalPrice: 450000.00,
		Installments: []models.Installment{
			{Amount: 14583.33, PaidAmount: 14583.33},
			{Amount: 14583.33, PaidAmount: 0},
		},
	}

	res := Remaining(&contract)

	assert.InDelta(t, 435416.67, res.RemainingAmount, 0.001)
	// Тождество remaining + paid == final_price
	assert.InDelta(t, contract.FinalPrice, res.RemainingAmount+res.TotalPaid, 0.001)
	assert.InDelta(t, 3.24, CollectionPercentage(&contract), 0.01)
}

func TestRemainingWithoutInstallmentsUsesDownPayment(t *testing.T) {
	contract := models.Contract{
		FinalPrice:  300000,
		DownPayment: 50000,
	}

	res := Remaining(&contract)

	assert.InDelta(t, 50000.0, res.TotalPaid, 0.001)
	assert.InDelta(t, 250000.0, res.RemainingAmount, 0.001)
}

func TestRemainingZeroPriceDoesNotDivide(t *testing.T) {
	contract := models.Contract{FinalPrice: 0}

	res := Remaining(&contract)

	assert.Equal(t, 0.0, res.RemainingPercentage)
	assert.Equal(t, 0.0, CollectionPercentage(&contract))
}

func TestCollectionPercentageBounds(t *testing.T) {
	tests := []struct {
		name     string
		contract models.Contract
	}{
		{
			name: "partially paid",
			contract: models.Contract{
				FinalPrice:   100000,
				Installments: []models.Installment{{PaidAmount: 25000}},
			},
		},
		{
			name: "fully paid",
			contract: models.Contract{
				FinalPrice:   100000,
				Installments: []models.Installment{{PaidAmount: 60000}, {PaidAmount: 40000}},
			},
		},
		{
			name:     "no payments",
			contract: models.Contract{FinalPrice: 100000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := CollectionPercentage(&tt.contract)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		})
	}
}

func TestDashboardKPIs(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Customer{FullName: "Ахмед Хассан", NationalID: "29801011234567"}).Error)
	require.NoError(t, db.Create(&[]models.Unit{
		{Code: "A-101", Status: models.UnitStatusSold, Price: 450000},
		{Code: "A-102", Status: models.UnitStatusAvailable, Price: 500000},
		{Code: "B-201", Status: models.UnitStatusReserved, Price: 380000},
	}).Error)
	require.NoError(t, db.Create(&[]models.Contract{
		{ContractNumber: "C-1", FinalPrice: 450000, Status: models.ContractStatusActive},
		{ContractNumber: "C-2", FinalPrice: 380000, Status: models.ContractStatusCompleted},
	}).Error)

	// Мягко удаленный договор не должен попадать в агрегаты
	cancelled := models.Contract{ContractNumber: "C-3", FinalPrice: 999999, Status: models.ContractStatusCancelled}
	require.NoError(t, db.Create(&cancelled).Error)
	require.NoError(t, db.Delete(&cancelled).Error)

	snapshot, err := DashboardKPIs(db)
	require.NoError(t, err)

	assert.InDelta(t, 830000.0, snapshot.TotalSales, 0.001)
	assert.Equal(t, int64(1), snapshot.TotalCustomers)
	assert.Equal(t, int64(3), snapshot.TotalUnits)
	assert.Equal(t, int64(1), snapshot.AvailableUnits)
	assert.Equal(t, int64(1), snapshot.SoldUnits)
	assert.Equal(t, int64(2), snapshot.TotalContracts)
	assert.Equal(t, int64(1), snapshot.ActiveContracts)
	assert.Equal(t, int64(1), snapshot.CompletedContracts)
}
