package handlers

import (
	"fmt"
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SafeInput определяет тело запроса на создание/обновление кассы.
type SafeInput struct {
	Name       string  `json:"name" binding:"required"`
	Balance    float64 `json:"balance" binding:"gte=0"`
	MaxBalance float64 `json:"maxBalance" binding:"gte=0"`
	Notes      string  `json:"notes"`
}

// TransferInput определяет тело запроса на перевод между кассами.
type TransferInput struct {
	FromSafeID   uint    `json:"fromSafeId" binding:"required"`
	ToSafeID     uint    `json:"toSafeId" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	TransferDate string  `json:"transferDate"` // YYYY-MM-DD, по умолчанию сегодня
	Notes        string  `json:"notes"`
}

// ListSafesHandler возвращает все кассы с суммарным балансом казны.
func ListSafesHandler(c *gin.Context) {
	var safes []models.Safe
	if err := config.DB.Order("name asc").Find(&safes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить кассы"})
		return
	}

	var total float64
	for _, safe := range safes {
		total += safe.Balance
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         safes,
		"totalBalance": total,
	})
}

// GetSafeHandler возвращает кассу и последние переводы с ее участием.
func GetSafeHandler(c *gin.Context) {
	id := c.Param("id")
	var safe models.Safe
	if err := config.DB.First(&safe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Касса не найдена"})
		return
	}

	var transfers []models.Transfer
	if err := config.DB.
		Preload("FromSafe").Preload("ToSafe").
		Where("from_safe_id = ? OR to_safe_id = ?", safe.ID, safe.ID).
		Order("transfer_date desc").Limit(50).
		Find(&transfers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить переводы"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"safe":      safe,
		"transfers": transfers,
	})
}

// CreateSafeHandler создает кассу.
func CreateSafeHandler(c *gin.Context) {
	var input SafeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	safe := models.Safe{
		Name:       input.Name,
		Balance:    input.Balance,
		MaxBalance: input.MaxBalance,
		Notes:      input.Notes,
	}
	if err := config.DB.Create(&safe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать кассу: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, safe)
}

// UpdateSafeHandler обновляет имя, лимит и примечания кассы.
// Баланс через этот метод не меняется — только оплатами и переводами.
func UpdateSafeHandler(c *gin.Context) {
	id := c.Param("id")
	var safe models.Safe
	if err := config.DB.First(&safe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Касса не найдена"})
		return
	}

	var input struct {
		Name       string  `json:"name" binding:"required"`
		MaxBalance float64 `json:"maxBalance" binding:"gte=0"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	safe.Name = input.Name
	safe.MaxBalance = input.MaxBalance
	safe.Notes = input.Notes

	if err := config.DB.Save(&safe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить кассу: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, safe)
}

// DeleteSafeHandler мягко удаляет кассу с нулевым балансом.
func DeleteSafeHandler(c *gin.Context) {
	id := c.Param("id")
	var safe models.Safe
	if err := config.DB.First(&safe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Касса не найдена"})
		return
	}
	if safe.Balance != 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Касса с ненулевым балансом не может быть удалена"})
		return
	}

	if err := config.DB.Delete(&safe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить кассу"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Касса удалена"})
}

// ListTransfersHandler возвращает переводы с пагинацией.
func ListTransfersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Transfer{}).
		Preload("FromSafe").Preload("ToSafe").
		Order("transfer_date desc, id desc")

	if safeID := c.Query("safe_id"); safeID != "" {
		query = query.Where("from_safe_id = ? OR to_safe_id = ?", safeID, safeID)
	}

	var totalRows int64
	query.Count(&totalRows)

	var transfers []models.Transfer
	if err := query.Scopes(Paginate(c)).Find(&transfers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить переводы"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, transfers, totalRows))
}

// CreateTransferHandler проводит перевод между двумя разными кассами
// в одной транзакции: списание, зачисление и запись перевода.
func CreateTransferHandler(c *gin.Context) {
	var input TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckTransfer(input.FromSafeID, input.ToSafeID, input.Amount); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	transferDate, err := parseOptionalDate(input.TransferDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата перевода, ожидается YYYY-MM-DD"})
		return
	}

	transfer := models.Transfer{
		FromSafeID: input.FromSafeID,
		ToSafeID:   input.ToSafeID,
		Amount:     input.Amount,
		Notes:      input.Notes,
	}
	if transferDate != nil {
		transfer.TransferDate = *transferDate
	} else {
		transfer.TransferDate = time.Now()
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var from, to models.Safe
		if err := tx.First(&from, input.FromSafeID).Error; err != nil {
			return fmt.Errorf("касса-источник не найдена")
		}
		if err := tx.First(&to, input.ToSafeID).Error; err != nil {
			return fmt.Errorf("касса-получатель не найдена")
		}
		if from.Balance < input.Amount {
			return fmt.Errorf("недостаточно средств в кассе %s", from.Name)
		}

		if err := tx.Model(&from).Update("balance", gorm.Expr("balance - ?", input.Amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(&to).Update("balance", gorm.Expr("balance + ?", input.Amount)).Error; err != nil {
			return err
		}
		return tx.Create(&transfer).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось выполнить перевод: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, transfer)
}
