package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/finance"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContractInput определяет тело запроса на создание договора.
type ContractInput struct {
	ContractNumber    string  `json:"contractNumber" binding:"required"`
	CustomerID        uint    `json:"customerId" binding:"required"`
	UnitID            uint    `json:"unitId" binding:"required"`
	BrokerID          *uint   `json:"brokerId"`
	PlanID            *uint   `json:"planId"`
	StartDate         string  `json:"startDate" binding:"required"` // YYYY-MM-DD
	TotalPrice        float64 `json:"totalPrice" binding:"required,gt=0"`
	Discount          float64 `json:"discount" binding:"gte=0"`
	FinalPrice        float64 `json:"finalPrice" binding:"required,gt=0"`
	DownPayment       float64 `json:"downPayment" binding:"gte=0"`
	InstallmentCount  int     `json:"installmentCount" binding:"gte=0"`
	Comment           string  `json:"comment"`
}

// ContractListItem — строка списка договоров с именами связанных сущностей.
type ContractListItem struct {
	ID             uint      `json:"id"`
	ContractNumber string    `json:"contractNumber"`
	CustomerName   string    `json:"customerName"`
	UnitCode       string    `json:"unitCode"`
	FinalPrice     float64   `json:"finalPrice"`
	DownPayment    float64   `json:"downPayment"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListContractsHandler возвращает договоры с именами покупателя и объекта.
func ListContractsHandler(c *gin.Context) {
	query := config.DB.Table("contracts ct").
		Select(`ct.id, ct.contract_number, cu.full_name as customer_name,
			u.code as unit_code, ct.final_price, ct.down_payment, ct.status, ct.created_at`).
		Joins("LEFT JOIN customers cu ON ct.customer_id = cu.id").
		Joins("LEFT JOIN units u ON ct.unit_id = u.id").
		Where("ct.deleted_at IS NULL").
		Order("ct.id desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("ct.status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("ct.customer_id = ?", customerID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("ct.contract_number LIKE ? OR cu.full_name LIKE ? OR u.code LIKE ?", like, like, like)
	}

	var totalRows int64
	query.Count(&totalRows)

	var items []ContractListItem
	if err := query.Scopes(Paginate(c)).Scan(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить договоры"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, items, totalRows))
}

// GetContractHandler возвращает договор со связями и финансовой сводкой.
func GetContractHandler(c *gin.Context) {
	id := c.Param("id")
	var contract models.Contract
	if err := config.DB.
		Preload("Customer").Preload("Unit").Preload("Broker").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date asc")
		}).
		First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Договор не найден"})
		return
	}

	// Авторитетный статус платежей вычисляется из дат, снимок в строке не используется
	today := time.Now()
	for i := range contract.Installments {
		contract.Installments[i].Status = finance.InstallmentStatus(&contract.Installments[i], today)
	}

	c.JSON(http.StatusOK, gin.H{
		"contract":   contract,
		"remaining":  finance.Remaining(&contract),
		"collection": finance.CollectionPercentage(&contract),
	})
}

// CreateContractHandler создает договор в транзакции: проверяет объект,
// помечает его проданным и генерирует график равных платежей.
func CreateContractHandler(c *gin.Context) {
	var input ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckContract(input.TotalPrice, input.Discount, input.FinalPrice, input.DownPayment); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата начала, ожидается YYYY-MM-DD"})
		return
	}

	managerID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Не авторизован"})
		return
	}

	contract := models.Contract{
		ContractNumber:   input.ContractNumber,
		StartDate:        &startDate,
		TotalPrice:       input.TotalPrice,
		Discount:         input.Discount,
		FinalPrice:       input.FinalPrice,
		DownPayment:      input.DownPayment,
		InstallmentCount: input.InstallmentCount,
		Status:           models.ContractStatusActive,
		Comment:          input.Comment,
		CustomerID:       input.CustomerID,
		UnitID:           input.UnitID,
		BrokerID:         input.BrokerID,
		ManagerID:        managerID,
		PlanID:           input.PlanID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, input.UnitID).Error; err != nil {
			return fmt.Errorf("объект не найден")
		}
		if unit.Status == models.UnitStatusSold {
			return fmt.Errorf("объект %s уже продан", unit.Code)
		}

		if input.InstallmentCount > 0 {
			contract.InstallmentAmount = math.Round((input.FinalPrice-input.DownPayment)/float64(input.InstallmentCount)*100) / 100
		}

		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		// Объект уходит с витрины сразу после подписания
		if err := tx.Model(&unit).Update("status", models.UnitStatusSold).Error; err != nil {
			return err
		}

		if input.PlanID != nil {
			return generatePlanSchedule(tx, &contract, *input.PlanID)
		}
		return generateEqualSchedule(tx, &contract)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось создать договор: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// generateEqualSchedule создает InstallmentCount равных ежемесячных платежей.
// Последний платеж поглощает копеечную разницу округления.
func generateEqualSchedule(tx *gorm.DB, contract *models.Contract) error {
	if contract.InstallmentCount <= 0 {
		return nil
	}

	financed := contract.FinalPrice - contract.DownPayment
	if financed <= 0 {
		return nil
	}

	base := math.Round(financed/float64(contract.InstallmentCount)*100) / 100
	start := time.Now()
	if contract.StartDate != nil {
		start = *contract.StartDate
	}

	installments := make([]models.Installment, 0, contract.InstallmentCount)
	var accumulated float64
	for i := 0; i < contract.InstallmentCount; i++ {
		amount := base
		if i == contract.InstallmentCount-1 {
			amount = math.Round((financed-accumulated)*100) / 100
		}
		accumulated += amount

		installments = append(installments, models.Installment{
			ContractID: contract.ID,
			Amount:     amount,
			DueDate:    start.AddDate(0, i+1, 0),
			Status:     models.InstallmentStatusPending,
		})
	}

	return tx.Create(&installments).Error
}

// generatePlanSchedule строит график по формулам шаблона рассрочки.
func generatePlanSchedule(tx *gorm.DB, contract *models.Contract, planID uint) error {
	var plan models.InstallmentPlan
	if err := tx.Preload("Lines").First(&plan, planID).Error; err != nil {
		return fmt.Errorf("шаблон рассрочки не найден")
	}

	// Параметры, доступные в формулах строк шаблона
	parameters := map[string]interface{}{
		"total_price":  contract.TotalPrice,
		"final_price":  contract.FinalPrice,
		"down_payment": contract.DownPayment,
		"financed":     contract.FinalPrice - contract.DownPayment,
		"n":            float64(len(plan.Lines)),
	}

	start := time.Now()
	if contract.StartDate != nil {
		start = *contract.StartDate
	}

	installments := make([]models.Installment, 0, len(plan.Lines))
	for _, line := range plan.Lines {
		expression, err := govaluate.NewEvaluableExpression(line.Formula)
		if err != nil {
			return fmt.Errorf("ошибка в формуле '%s': %w", line.Formula, err)
		}
		result, err := expression.Evaluate(parameters)
		if err != nil {
			return fmt.Errorf("не удалось вычислить формулу '%s': %w", line.Formula, err)
		}
		amount, ok := result.(float64)
		if !ok {
			return fmt.Errorf("результат формулы '%s' не является числом", line.Formula)
		}

		due := start.AddDate(0, line.MonthOffset, 0)
		if line.Day > 0 {
			due = time.Date(due.Year(), due.Month(), line.Day, 0, 0, 0, 0, due.Location())
		}

		installments = append(installments, models.Installment{
			ContractID: contract.ID,
			Amount:     math.Round(amount*100) / 100,
			DueDate:    due,
			Status:     models.InstallmentStatusPending,
		})
	}

	if len(installments) == 0 {
		return nil
	}
	if err := tx.Create(&installments).Error; err != nil {
		return err
	}
	return tx.Model(contract).Updates(map[string]interface{}{
		"plan_id":           planID,
		"installment_count": len(installments),
	}).Error
}

// RegenerateScheduleHandler заменяет график платежей договора на новый,
// построенный по указанному шаблону. Оплаченные платежи не трогаем.
func RegenerateScheduleHandler(c *gin.Context) {
	contractID := c.Param("id")
	var body struct {
		PlanID uint `json:"planId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан шаблон рассрочки"})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, contractID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Договор не найден"})
		return
	}

	var paidCount int64
	config.DB.Model(&models.Installment{}).
		Where("contract_id = ? AND paid_date IS NOT NULL", contract.ID).
		Count(&paidCount)
	if paidCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "По договору уже есть оплаченные платежи, перегенерация невозможна"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contract.ID).Delete(&models.Installment{}).Error; err != nil {
			return err
		}
		return generatePlanSchedule(tx, &contract, body.PlanID)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось перегенерировать график: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "График платежей сгенерирован"})
}

// UpdateContractHandler обновляет редактируемые поля договора.
// Цены меняются только пока по договору нет оплаченных платежей.
func UpdateContractHandler(c *gin.Context) {
	id := c.Param("id")
	var contract models.Contract
	if err := config.DB.First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Договор не найден"})
		return
	}

	var input struct {
		TotalPrice  *float64 `json:"totalPrice"`
		Discount    *float64 `json:"discount"`
		FinalPrice  *float64 `json:"finalPrice"`
		DownPayment *float64 `json:"downPayment"`
		BrokerID    *uint    `json:"brokerId"`
		Comment     *string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	priceChanged := input.TotalPrice != nil || input.Discount != nil ||
		input.FinalPrice != nil || input.DownPayment != nil
	if priceChanged {
		var paidCount int64
		config.DB.Model(&models.Installment{}).
			Where("contract_id = ? AND paid_date IS NOT NULL", contract.ID).
			Count(&paidCount)
		if paidCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "По договору есть оплаты, суммы менять нельзя"})
			return
		}

		if input.TotalPrice != nil {
			contract.TotalPrice = *input.TotalPrice
		}
		if input.Discount != nil {
			contract.Discount = *input.Discount
		}
		if input.FinalPrice != nil {
			contract.FinalPrice = *input.FinalPrice
		}
		if input.DownPayment != nil {
			contract.DownPayment = *input.DownPayment
		}

		if fieldErrs := validation.CheckContract(contract.TotalPrice, contract.Discount, contract.FinalPrice, contract.DownPayment); fieldErrs.HasErrors() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
	}

	if input.BrokerID != nil {
		contract.BrokerID = input.BrokerID
	}
	if input.Comment != nil {
		contract.Comment = *input.Comment
	}

	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить договор: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// CancelContractHandler отменяет договор: статус cancelled, объект
// возвращается в продажу, неоплаченные платежи удаляются.
func CancelContractHandler(c *gin.Context) {
	id := c.Param("id")
	var contract models.Contract
	if err := config.DB.First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Договор не найден"})
		return
	}
	if contract.Status == models.ContractStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Договор уже отменен"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contract).Update("status", models.ContractStatusCancelled).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Unit{}).Where("id = ?", contract.UnitID).
			Update("status", models.UnitStatusAvailable).Error; err != nil {
			return err
		}
		return tx.Where("contract_id = ? AND paid_date IS NULL", contract.ID).
			Delete(&models.Installment{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отменить договор: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Договор отменен"})
}

// DeleteContractHandler мягко удаляет договор вместе с графиком платежей.
func DeleteContractHandler(c *gin.Context) {
	id := c.Param("id")
	var contract models.Contract
	if err := config.DB.First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Договор не найден"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contract.ID).Delete(&models.Installment{}).Error; err != nil {
			return err
		}
		if contract.Status == models.ContractStatusActive {
			if err := tx.Model(&models.Unit{}).Where("id = ?", contract.UnitID).
				Update("status", models.UnitStatusAvailable).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&contract).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить договор: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Договор удален"})
}
