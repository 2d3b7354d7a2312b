package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
)

// BrokerInput определяет тело запроса на создание/обновление маклера.
type BrokerInput struct {
	FullName       string  `json:"fullName" binding:"required"`
	Phone          string  `json:"phone" binding:"omitempty,intl_phone"`
	CommissionRate float64 `json:"commissionRate" binding:"gte=0,lte=100"`
	Notes          string  `json:"notes"`
}

// brokerDueRow — строка отчета по начисленным комиссиям маклера.
type brokerDueRow struct {
	ContractID     uint    `json:"contractId"`
	ContractNumber string  `json:"contractNumber"`
	FinalPrice     float64 `json:"finalPrice"`
	Commission     float64 `json:"commission"`
}

// ListBrokersHandler возвращает список маклеров с пагинацией.
func ListBrokersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Broker{}).Order("full_name asc")

	var brokers []models.Broker
	if c.Query("all") == "true" {
		if err := query.Find(&brokers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить маклеров"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": brokers})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&brokers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить маклеров"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, brokers, totalRows))
}

// GetBrokerHandler возвращает маклера и его комиссии по договорам.
// Комиссия считается от итоговой цены каждого не отмененного договора.
func GetBrokerHandler(c *gin.Context) {
	id := c.Param("id")
	var broker models.Broker
	if err := config.DB.First(&broker, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Маклер не найден"})
		return
	}

	var contracts []models.Contract
	if err := config.DB.
		Where("broker_id = ? AND status <> ?", broker.ID, models.ContractStatusCancelled).
		Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить договоры маклера"})
		return
	}

	dues := make([]brokerDueRow, 0, len(contracts))
	var totalDue float64
	for _, contract := range contracts {
		commission := contract.FinalPrice * broker.CommissionRate / 100
		totalDue += commission
		dues = append(dues, brokerDueRow{
			ContractID:     contract.ID,
			ContractNumber: contract.ContractNumber,
			FinalPrice:     contract.FinalPrice,
			Commission:     commission,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"broker":   broker,
		"dues":     dues,
		"totalDue": totalDue,
	})
}

// CreateBrokerHandler создает маклера.
func CreateBrokerHandler(c *gin.Context) {
	var input BrokerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	broker := models.Broker{
		FullName:       input.FullName,
		Phone:          input.Phone,
		CommissionRate: input.CommissionRate,
		Notes:          input.Notes,
	}
	if err := config.DB.Create(&broker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать маклера: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, broker)
}

// UpdateBrokerHandler обновляет маклера.
func UpdateBrokerHandler(c *gin.Context) {
	id := c.Param("id")
	var broker models.Broker
	if err := config.DB.First(&broker, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Маклер не найден"})
		return
	}

	var input BrokerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	broker.FullName = input.FullName
	broker.Phone = input.Phone
	broker.CommissionRate = input.CommissionRate
	broker.Notes = input.Notes

	if err := config.DB.Save(&broker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить маклера: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, broker)
}

// DeleteBrokerHandler мягко удаляет маклера.
func DeleteBrokerHandler(c *gin.Context) {
	id := c.Param("id")
	if result := config.DB.Delete(&models.Broker{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить маклера"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Маклер не найден"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Маклер удален"})
	}
}
