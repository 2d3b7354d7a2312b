// aqarat-crm/internal/admin/seed.go

package admin

import (
	"time"

	"aqarat-crm/internal/finance"
	"aqarat-crm/models"

	"gorm.io/gorm"
)

// SeedSampleData наполняет базу демонстрационными данными.
// Все строки создаются в одной транзакции: либо весь набор, либо ничего.
func SeedSampleData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		customers := []models.Customer{
			{FullName: "Ахмед Хассан", Phone: "+201001234567", NationalID: "29801011234567", Address: "Каир, Наср-Сити"},
			{FullName: "Фатима Махмуд", Phone: "+201117654321", NationalID: "29905152345678", Address: "Гиза, Докки"},
			{FullName: "Омар Салех", Phone: "+201229876543", NationalID: "28712303456789", Address: "Александрия"},
		}
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		units := []models.Unit{
			{Code: "A-101", UnitType: "apartment", Building: "A", Floor: 1, Area: 120.5, Price: 500000, Status: models.UnitStatusSold},
			{Code: "A-102", UnitType: "apartment", Building: "A", Floor: 1, Area: 95.0, Price: 420000, Status: models.UnitStatusReserved},
			{Code: "B-201", UnitType: "shop", Building: "B", Floor: 2, Area: 60.0, Price: 380000, Status: models.UnitStatusAvailable},
			{Code: "B-202", UnitType: "office", Building: "B", Floor: 2, Area: 80.0, Price: 450000, Status: models.UnitStatusAvailable},
		}
		if err := tx.Create(&units).Error; err != nil {
			return err
		}

		broker := models.Broker{FullName: "Халед Ибрагим", Phone: "+201554443322", CommissionRate: 2.5}
		if err := tx.Create(&broker).Error; err != nil {
			return err
		}

		start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
		contract := models.Contract{
			ContractNumber:    "C-2025-001",
			StartDate:         &start,
			TotalPrice:        500000,
			Discount:          50000,
			FinalPrice:        450000,
			DownPayment:       100000,
			InstallmentCount:  24,
			InstallmentAmount: 14583.33,
			Status:            models.ContractStatusActive,
			CustomerID:        customers[0].ID,
			UnitID:            units[0].ID,
			BrokerID:          &broker.ID,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		// График: первый платеж оплачен, остальные ожидают
		paidDate := start.AddDate(0, 1, 0)
		installments := make([]models.Installment, 0, contract.InstallmentCount)
		for i := 0; i < contract.InstallmentCount; i++ {
			inst := models.Installment{
				ContractID: contract.ID,
				Amount:     contract.InstallmentAmount,
				DueDate:    start.AddDate(0, i+1, 0),
				Status:     models.InstallmentStatusPending,
			}
			if i == 0 {
				inst.PaidDate = &paidDate
				inst.PaidAmount = inst.Amount
				inst.Status = models.InstallmentStatusPaid
			}
			installments = append(installments, inst)
		}
		if err := tx.Create(&installments).Error; err != nil {
			return err
		}

		safes := []models.Safe{
			{Name: "Главная касса", Balance: 250000, MaxBalance: 1000000},
			{Name: "Банковский счет", Balance: 800000, MaxBalance: 0},
		}
		if err := tx.Create(&safes).Error; err != nil {
			return err
		}

		transfer := models.Transfer{
			FromSafeID:   safes[0].ID,
			ToSafeID:     safes[1].ID,
			Amount:       50000,
			TransferDate: start.AddDate(0, 1, 5),
			Notes:        "Инкассация",
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		partner := models.Partner{FullName: "Мохамед Али", Phone: "+201009998877", SharePercentage: 25}
		if err := tx.Create(&partner).Error; err != nil {
			return err
		}

		day := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
		// RunningBalance заполняется при записи и далее не пересчитывается
		partnerTxs := []models.PartnerDailyTransaction{
			{PartnerID: partner.ID, ContractID: &contract.ID, TransactionType: models.PartnerTxIncome, Amount: 14583.33, PartnerShare: 25, RunningBalance: 14583.33, EntryDate: day, Description: "Платеж по договору C-2025-001"},
			{PartnerID: partner.ID, TransactionType: models.PartnerTxExpense, Amount: 2500, PartnerShare: 25, RunningBalance: 12083.33, EntryDate: day, Description: "Расходы на рекламу"},
			{PartnerID: partner.ID, TransactionType: models.PartnerTxClosing, Amount: 0, RunningBalance: 12083.33, EntryDate: day, Description: "Закрытие дня"},
		}
		if err := tx.Create(&partnerTxs).Error; err != nil {
			return err
		}

		if _, err := finance.RebuildLedgerEntry(tx, partner.ID, day); err != nil {
			return err
		}

		debt := models.PartnerDebt{PartnerID: partner.ID, Amount: 15000, Notes: "Аванс за февраль"}
		if err := tx.Create(&debt).Error; err != nil {
			return err
		}

		return CreateDefaultSettings(tx)
	})
}
