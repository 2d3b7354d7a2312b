package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/admin"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest готовит in-memory базу и маршруты без auth-прослойки:
// здесь проверяется логика обработчиков, а не выдача токенов.
func setupTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.RegisterCustomValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, admin.Migrate(db))
	config.DB = db
	config.RDB = nil

	r := gin.New()
	r.POST("/api/customers", CreateCustomerHandler)
	r.POST("/api/transfers", CreateTransferHandler)
	r.GET("/api/safes", ListSafesHandler)
	r.POST("/api/installments/:id/pay", PayInstallmentHandler)
	r.GET("/api/reports/download", DownloadReportHandler)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCustomerRejectsBadNationalID(t *testing.T) {
	r := setupTest(t)

	// Неполный номер удостоверения отсекается уже на binding-е
	w := doJSON(r, http.MethodPost, "/api/customers", gin.H{
		"fullName":   "Ахмед Хассан",
		"nationalId": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "natid")

	var count int64
	config.DB.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(r, http.MethodPost, "/api/customers", gin.H{
		"fullName":   "Ахмед Хассан",
		"nationalId": "29801011234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateTransferRejectsSameSafe(t *testing.T) {
	r := setupTest(t)
	require.NoError(t, config.DB.Create(&models.Safe{Name: "Главная касса", Balance: 1000}).Error)

	w := doJSON(r, http.MethodPost, "/api/transfers", gin.H{
		"fromSafeId": 1,
		"toSafeId":   1,
		"amount":     100,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
}

func TestCreateTransferMovesFunds(t *testing.T) {
	r := setupTest(t)
	from := models.Safe{Name: "Касса офиса", Balance: 5000}
	to := models.Safe{Name: "Банковский счет", Balance: 100}
	require.NoError(t, config.DB.Create(&from).Error)
	require.NoError(t, config.DB.Create(&to).Error)

	w := doJSON(r, http.MethodPost, "/api/transfers", gin.H{
		"fromSafeId":   from.ID,
		"toSafeId":     to.ID,
		"amount":       1500,
		"transferDate": "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var fromAfter, toAfter models.Safe
	require.NoError(t, config.DB.First(&fromAfter, from.ID).Error)
	require.NoError(t, config.DB.First(&toAfter, to.ID).Error)
	assert.InDelta(t, 3500, fromAfter.Balance, 0.001)
	assert.InDelta(t, 1600, toAfter.Balance, 0.001)
}

func TestCreateTransferInsufficientFunds(t *testing.T) {
	r := setupTest(t)
	from := models.Safe{Name: "Пустая касса", Balance: 50}
	to := models.Safe{Name: "Основная касса", Balance: 0}
	require.NoError(t, config.DB.Create(&from).Error)
	require.NoError(t, config.DB.Create(&to).Error)

	w := doJSON(r, http.MethodPost, "/api/transfers", gin.H{
		"fromSafeId": from.ID,
		"toSafeId":   to.ID,
		"amount":     100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Балансы не тронуты
	var fromAfter models.Safe
	require.NoError(t, config.DB.First(&fromAfter, from.ID).Error)
	assert.InDelta(t, 50, fromAfter.Balance, 0.001)
}

func TestPayInstallmentUpdatesSafeAndContract(t *testing.T) {
	r := setupTest(t)

	customer := models.Customer{FullName: "Ахмед Хассан", NationalID: "29801011234567"}
	require.NoError(t, config.DB.Create(&customer).Error)
	unit := models.Unit{Code: "A-101", Price: 100000, Status: models.UnitStatusSold}
	require.NoError(t, config.DB.Create(&unit).Error)
	contract := models.Contract{
		ContractNumber: "C-1",
		TotalPrice:     100000,
		FinalPrice:     100000,
		DownPayment:    50000,
		Status:         models.ContractStatusActive,
		CustomerID:     customer.ID,
		UnitID:         unit.ID,
	}
	require.NoError(t, config.DB.Create(&contract).Error)
	inst := models.Installment{
		ContractID: contract.ID,
		Amount:     50000,
		DueDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.InstallmentStatusPending,
	}
	require.NoError(t, config.DB.Create(&inst).Error)
	safe := models.Safe{Name: "Касса продаж", Balance: 0}
	require.NoError(t, config.DB.Create(&safe).Error)

	w := doJSON(r, http.MethodPost, "/api/installments/1/pay", gin.H{
		"paidAmount": 50000,
		"paidDate":   "2025-06-20",
		"safeId":     safe.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var instAfter models.Installment
	require.NoError(t, config.DB.First(&instAfter, inst.ID).Error)
	require.NotNil(t, instAfter.PaidDate)
	assert.Equal(t, models.InstallmentStatusPaid, instAfter.Status)

	var safeAfter models.Safe
	require.NoError(t, config.DB.First(&safeAfter, safe.ID).Error)
	assert.InDelta(t, 50000, safeAfter.Balance, 0.001)

	// Последний платеж закрыл договор
	var contractAfter models.Contract
	require.NoError(t, config.DB.First(&contractAfter, contract.ID).Error)
	assert.Equal(t, models.ContractStatusCompleted, contractAfter.Status)

	// Повторная оплата отклоняется
	w = doJSON(r, http.MethodPost, "/api/installments/1/pay", gin.H{
		"paidAmount": 50000,
		"safeId":     safe.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDownloadReportInvalidType(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodGet, "/api/reports/download?type=bogus&format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadReportPDF(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodGet, "/api/reports/download?type=units&format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "units_report_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
