package reports

import (
	"bytes"
	"strings"
	"testing"

	"aqarat-crm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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
	)
	require.NoError(t, err)

	customer := models.Customer{FullName: "Ахмед Хассан", Phone: "+201001234567", NationalID: "29801011234567"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.Unit{Code: "A-101", UnitType: "apartment", Area: 120, Price: 450000, Status: models.UnitStatusSold}).Error)

	contract := models.Contract{
		ContractNumber: "C-2025-001",
		CustomerID:     customer.ID,
		TotalPrice:     500000,
		Discount:       50000,
		FinalPrice:     450000,
		Status:         models.ContractStatusActive,
	}
	require.NoError(t, db.Create(&contract).Error)
	require.NoError(t, db.Create(&models.Installment{
		ContractID: contract.ID,
		Amount:     14583.33,
		PaidAmount: 14583.33,
	}).Error)

	return db
}

func TestGeneratePDFReports(t *testing.T) {
	db := setupTestDB(t)

	for _, reportType := range []string{TypeFinancial, TypeUnits, TypeCustomers} {
		t.Run(reportType, func(t *testing.T) {
			doc, err := Generate(db, reportType, FormatPDF)
			require.NoError(t, err)

			assert.Equal(t, ContentTypePDF, doc.ContentType)
			assert.True(t, strings.HasPrefix(doc.Filename, reportType+"_report_"), "filename %q", doc.Filename)
			assert.True(t, strings.HasSuffix(doc.Filename, ".pdf"))
			// PDF всегда начинается с %PDF
			require.Greater(t, len(doc.Data), 4)
			assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
		})
	}
}

func TestGenerateExcelReports(t *testing.T) {
	db := setupTestDB(t)

	for _, reportType := range []string{TypeFinancial, TypeUnits, TypeCustomers} {
		t.Run(reportType, func(t *testing.T) {
			doc, err := Generate(db, reportType, FormatExcel)
			require.NoError(t, err)

			assert.Equal(t, ContentTypeExcel, doc.ContentType)
			assert.True(t, strings.HasPrefix(doc.Filename, reportType+"_report_"))
			assert.True(t, strings.HasSuffix(doc.Filename, ".xlsx"))
			// xlsx — это zip-архив, сигнатура PK
			require.Greater(t, len(doc.Data), 2)
			assert.True(t, bytes.HasPrefix(doc.Data, []byte("PK")))

			// В книге только лист отчета, служебный Sheet1 удален
			f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
			require.NoError(t, err)
			defer f.Close()
			sheets := f.GetSheetList()
			require.Len(t, sheets, 1)
			assert.NotEqual(t, "Sheet1", sheets[0])
		})
	}
}

func TestGenerateRejectsUnknownTypeAndFormat(t *testing.T) {
	db := setupTestDB(t)

	_, err := Generate(db, "bogus", FormatPDF)
	assert.ErrorIs(t, err, ErrInvalidReport)

	_, err = Generate(db, TypeFinancial, "docx")
	assert.ErrorIs(t, err, ErrInvalidReport)

	_, err = Generate(db, "", "")
	assert.ErrorIs(t, err, ErrInvalidReport)
}
