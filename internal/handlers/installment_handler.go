package handlers

import (
	"fmt"
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/finance"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// InstallmentListItem — строка списка платежей с данными договора и покупателя.
type InstallmentListItem struct {
	ID             uint       `json:"id"`
	ContractID     uint       `json:"contractId"`
	ContractNumber string     `json:"contractNumber"`
	CustomerName   string     `json:"customerName"`
	UnitCode       string     `json:"unitCode"`
	Amount         float64    `json:"amount"`
	DueDate        time.Time  `json:"dueDate"`
	PaidDate       *time.Time `json:"paidDate,omitempty"`
	PaidAmount     float64    `json:"paidAmount"`
	Status         string     `json:"status"`
}

func installmentListQuery() *gorm.DB {
	return config.DB.Table("installments i").
		Select(`i.id, i.contract_id, ct.contract_number, cu.full_name as customer_name,
			u.code as unit_code, i.amount, i.due_date, i.paid_date, i.paid_amount, i.status`).
		Joins("LEFT JOIN contracts ct ON i.contract_id = ct.id").
		Joins("LEFT JOIN customers cu ON ct.customer_id = cu.id").
		Joins("LEFT JOIN units u ON ct.unit_id = u.id").
		Where("i.deleted_at IS NULL")
}

// ListInstallmentsHandler возвращает платежи с фильтрами по договору и статусу.
// Статус вычисляется из дат, снимок в строке используется только для индекса.
func ListInstallmentsHandler(c *gin.Context) {
	query := installmentListQuery().Order("i.due_date asc")

	if contractID := c.Query("contract_id"); contractID != "" {
		query = query.Where("i.contract_id = ?", contractID)
	}
	switch c.Query("status") {
	case models.InstallmentStatusPaid:
		query = query.Where("i.paid_date IS NOT NULL")
	case models.InstallmentStatusOverdue:
		query = query.Where("i.paid_date IS NULL AND i.due_date < ?", time.Now())
	case models.InstallmentStatusPending:
		query = query.Where("i.paid_date IS NULL AND i.due_date >= ?", time.Now())
	}
	if from := c.Query("from"); from != "" {
		if fromDate, err := parseDate(from); err == nil {
			query = query.Where("i.due_date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := parseDate(to); err == nil {
			query = query.Where("i.due_date < ?", toDate.AddDate(0, 0, 1))
		}
	}

	var totalRows int64
	query.Count(&totalRows)

	var items []InstallmentListItem
	if err := query.Scopes(Paginate(c)).Scan(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить платежи"})
		return
	}

	// Пересчитываем статус по датам перед отдачей
	today := time.Now()
	for i := range items {
		inst := models.Installment{
			PaidDate: items[i].PaidDate,
			DueDate:  items[i].DueDate,
		}
		items[i].Status = finance.InstallmentStatus(&inst, today)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, items, totalRows))
}

// PayInstallmentInput — тело запроса на регистрацию оплаты.
type PayInstallmentInput struct {
	PaidDate   string  `json:"paidDate"` // YYYY-MM-DD, по умолчанию сегодня
	PaidAmount float64 `json:"paidAmount" binding:"gt=0"`
	SafeID     uint    `json:"safeId" binding:"required"`
	Comment    string  `json:"comment"`
}

// PayInstallmentHandler регистрирует оплату: помечает платеж оплаченным,
// зачисляет сумму в кассу и при полном погашении закрывает договор.
func PayInstallmentHandler(c *gin.Context) {
	id := c.Param("id")
	var installment models.Installment
	if err := config.DB.First(&installment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Платеж не найден"})
		return
	}
	if installment.PaidDate != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Платеж уже оплачен"})
		return
	}

	var input PayInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	paidDate := time.Now()
	if input.PaidDate != "" {
		parsed, err := parseDate(input.PaidDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата оплаты, ожидается YYYY-MM-DD"})
			return
		}
		paidDate = parsed
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var safe models.Safe
		if err := tx.First(&safe, input.SafeID).Error; err != nil {
			return fmt.Errorf("касса не найдена")
		}

		installment.PaidDate = &paidDate
		installment.PaidAmount = input.PaidAmount
		installment.Status = models.InstallmentStatusPaid
		if input.Comment != "" {
			installment.Comment = input.Comment
		}
		if err := tx.Save(&installment).Error; err != nil {
			return err
		}

		// Зачисляем оплату в кассу
		if err := tx.Model(&safe).Update("balance", gorm.Expr("balance + ?", input.PaidAmount)).Error; err != nil {
			return err
		}

		// Если это был последний неоплаченный платеж — договор исполнен
		var unpaid int64
		if err := tx.Model(&models.Installment{}).
			Where("contract_id = ? AND paid_date IS NULL", installment.ContractID).
			Count(&unpaid).Error; err != nil {
			return err
		}
		if unpaid == 0 {
			return tx.Model(&models.Contract{}).Where("id = ?", installment.ContractID).
				Update("status", models.ContractStatusCompleted).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось зарегистрировать оплату: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, installment)
}

// RefreshOverdueHandler обновляет снимки статусов просроченных платежей.
func RefreshOverdueHandler(c *gin.Context) {
	result := config.DB.Model(&models.Installment{}).
		Where("paid_date IS NULL AND due_date < ? AND status <> ?", time.Now(), models.InstallmentStatusOverdue).
		Update("status", models.InstallmentStatusOverdue)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить статусы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}

// ExportInstallmentsHandler выгружает график платежей в Excel.
func ExportInstallmentsHandler(c *gin.Context) {
	query := installmentListQuery().Order("i.due_date asc")
	if contractID := c.Query("contract_id"); contractID != "" {
		query = query.Where("i.contract_id = ?", contractID)
	}

	var items []InstallmentListItem
	if err := query.Scan(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить платежи"})
		return
	}

	f := excelize.NewFile()
	sheetName := "График платежей"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Номер договора", "Покупатель", "Объект", "Сумма", "Срок оплаты", "Дата оплаты", "Оплачено", "Статус"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	today := time.Now()
	for i, item := range items {
		inst := models.Installment{PaidDate: item.PaidDate, DueDate: item.DueDate}
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.ContractNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.CustomerName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.UnitCode)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), item.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), item.DueDate.Format("02.01.2006"))
		if item.PaidDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), item.PaidDate.Format("02.01.2006"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), item.PaidAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), finance.InstallmentStatus(&inst, today))
	}

	fileName := fmt.Sprintf("installments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось записать Excel-файл"})
	}
}
