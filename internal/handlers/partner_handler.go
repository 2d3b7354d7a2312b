package handlers

import (
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/finance"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PartnerInput определяет тело запроса на создание/обновление партнера.
type PartnerInput struct {
	FullName        string  `json:"fullName" binding:"required"`
	Phone           string  `json:"phone" binding:"omitempty,intl_phone"`
	SharePercentage float64 `json:"sharePercentage" binding:"gte=0,lte=100"`
	Notes           string  `json:"notes"`
}

// PartnerTxInput определяет тело запроса на дневную операцию партнера.
type PartnerTxInput struct {
	TransactionType string  `json:"transactionType" binding:"required,oneof=income expense closing"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	EntryDate       string  `json:"entryDate"` // YYYY-MM-DD, по умолчанию сегодня
	ContractID      *uint   `json:"contractId"`
	SafeID          *uint   `json:"safeId"`
	Description     string  `json:"description"`
}

// PartnerDebtInput определяет тело запроса на долг партнера.
type PartnerDebtInput struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	DueDate string  `json:"dueDate"` // YYYY-MM-DD, необязательно
	Notes   string  `json:"notes"`
}

// ListPartnersHandler возвращает партнеров с пагинацией.
func ListPartnersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Partner{}).Order("full_name asc")

	var partners []models.Partner
	if c.Query("all") == "true" {
		if err := query.Find(&partners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить партнеров"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": partners})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить партнеров"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, partners, totalRows))
}

// GetPartnerHandler возвращает партнера, его долги и текущий накопительный баланс.
func GetPartnerHandler(c *gin.Context) {
	id := c.Param("id")
	var partner models.Partner
	if err := config.DB.First(&partner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Партнер не найден"})
		return
	}

	var debts []models.PartnerDebt
	if err := config.DB.Where("partner_id = ?", partner.ID).Order("id desc").Find(&debts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить долги партнера"})
		return
	}

	// Последний RunningBalance и есть текущий баланс партнера
	var lastTx models.PartnerDailyTransaction
	var balance float64
	if err := config.DB.Where("partner_id = ?", partner.ID).
		Order("entry_date desc, id desc").First(&lastTx).Error; err == nil {
		balance = lastTx.RunningBalance
	}

	c.JSON(http.StatusOK, gin.H{
		"partner": partner,
		"debts":   debts,
		"balance": balance,
	})
}

// CreatePartnerHandler создает партнера.
func CreatePartnerHandler(c *gin.Context) {
	var input PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	partner := models.Partner{
		FullName:        input.FullName,
		Phone:           input.Phone,
		SharePercentage: input.SharePercentage,
		Notes:           input.Notes,
	}
	if err := config.DB.Create(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать партнера: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, partner)
}

// UpdatePartnerHandler обновляет партнера.
func UpdatePartnerHandler(c *gin.Context) {
	id := c.Param("id")
	var partner models.Partner
	if err := config.DB.First(&partner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Партнер не найден"})
		return
	}

	var input PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	partner.FullName = input.FullName
	partner.Phone = input.Phone
	partner.SharePercentage = input.SharePercentage
	partner.Notes = input.Notes

	if err := config.DB.Save(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить партнера: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, partner)
}

// DeletePartnerHandler мягко удаляет партнера без неурегулированных долгов.
func DeletePartnerHandler(c *gin.Context) {
	id := c.Param("id")

	var openDebts int64
	config.DB.Model(&models.PartnerDebt{}).
		Where("partner_id = ? AND settled = ?", id, false).Count(&openDebts)
	if openDebts > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "У партнера есть неурегулированные долги"})
		return
	}

	if result := config.DB.Delete(&models.Partner{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить партнера"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Партнер не найден"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Партнер удален"})
	}
}

// CreatePartnerTxHandler записывает дневную операцию партнера.
// RunningBalance вычисляется здесь один раз от последнего снимка и далее
// агрегацией не пересчитывается. Дневная сводка перестраивается сразу.
func CreatePartnerTxHandler(c *gin.Context) {
	partnerID := c.Param("id")
	var partner models.Partner
	if err := config.DB.First(&partner, partnerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Партнер не найден"})
		return
	}

	var input PartnerTxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	entryDate := time.Now()
	if input.EntryDate != "" {
		parsed, err := parseDate(input.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата, ожидается YYYY-MM-DD"})
			return
		}
		entryDate = parsed
	}
	day, _ := finance.DayBounds(entryDate)

	trans := models.PartnerDailyTransaction{
		PartnerID:       partner.ID,
		ContractID:      input.ContractID,
		SafeID:          input.SafeID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		PartnerShare:    partner.SharePercentage,
		EntryDate:       day,
		Description:     input.Description,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Снимок накопительного баланса от последней операции
		var lastTx models.PartnerDailyTransaction
		var balance float64
		if err := tx.Where("partner_id = ?", partner.ID).
			Order("entry_date desc, id desc").First(&lastTx).Error; err == nil {
			balance = lastTx.RunningBalance
		}

		switch input.TransactionType {
		case models.PartnerTxIncome:
			balance += input.Amount
		case models.PartnerTxExpense:
			balance -= input.Amount
		}
		trans.RunningBalance = balance

		if err := tx.Create(&trans).Error; err != nil {
			return err
		}

		_, err := finance.RebuildLedgerEntry(tx, partner.ID, day)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось записать операцию: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, trans)
}

// ListPartnerTxHandler возвращает операции партнера за период.
func ListPartnerTxHandler(c *gin.Context) {
	partnerID := c.Param("id")

	query := config.DB.Model(&models.PartnerDailyTransaction{}).
		Where("partner_id = ?", partnerID).
		Order("entry_date desc, id desc")

	if from := c.Query("from"); from != "" {
		if fromDate, err := parseDate(from); err == nil {
			query = query.Where("entry_date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := parseDate(to); err == nil {
			query = query.Where("entry_date < ?", toDate.AddDate(0, 0, 1))
		}
	}

	var totalRows int64
	query.Count(&totalRows)

	var transactions []models.PartnerDailyTransaction
	if err := query.Scopes(Paginate(c)).Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить операции"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, transactions, totalRows))
}

// PartnerLedgerHandler возвращает дневные сводки партнера за период.
func PartnerLedgerHandler(c *gin.Context) {
	partnerID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID партнера"})
		return
	}

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if v := c.Query("from"); v != "" {
		if parsed, err := parseDate(v); err == nil {
			from = parsed
		}
	}
	if v := c.Query("to"); v != "" {
		if parsed, err := parseDate(v); err == nil {
			to = parsed
		}
	}
	if fieldErrs := validation.CheckDateRange(&from, &to); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	entries, err := finance.LedgerRange(config.DB, partnerID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить сводки"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// RebuildPartnerLedgerHandler перестраивает дневную сводку за указанный день.
func RebuildPartnerLedgerHandler(c *gin.Context) {
	partnerID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID партнера"})
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указана дата"})
		return
	}
	day, err := parseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата, ожидается YYYY-MM-DD"})
		return
	}

	entry, err := finance.RebuildLedgerEntry(config.DB, partnerID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось перестроить сводку: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreatePartnerDebtHandler записывает долг партнера.
func CreatePartnerDebtHandler(c *gin.Context) {
	partnerID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID партнера"})
		return
	}

	var input PartnerDebtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	dueDate, err := parseOptionalDate(input.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата, ожидается YYYY-MM-DD"})
		return
	}

	debt := models.PartnerDebt{
		PartnerID: partnerID,
		Amount:    input.Amount,
		DueDate:   dueDate,
		Notes:     input.Notes,
	}
	if err := config.DB.Create(&debt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось записать долг: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, debt)
}

// SettlePartnerDebtHandler помечает долг урегулированным.
func SettlePartnerDebtHandler(c *gin.Context) {
	debtID := c.Param("debtId")
	var debt models.PartnerDebt
	if err := config.DB.First(&debt, debtID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Долг не найден"})
		return
	}
	if debt.Settled {
		c.JSON(http.StatusConflict, gin.H{"error": "Долг уже урегулирован"})
		return
	}

	if err := config.DB.Model(&debt).Update("settled", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить долг"})
		return
	}
	c.JSON(http.StatusOK, debt)
}
