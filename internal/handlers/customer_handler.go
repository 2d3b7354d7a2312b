package handlers

import (
	"fmt"
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// CustomerInput определяет тело запроса на создание/обновление покупателя.
type CustomerInput struct {
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId" binding:"required,natid"`
	Address    string `json:"address"`
	Email      string `json:"email" binding:"omitempty,email"`
	Notes      string `json:"notes"`
}

// ListCustomersHandler возвращает список покупателей с пагинацией и поиском.
// Параметр q ищет по ФИО, телефону и номеру удостоверения.
func ListCustomersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Customer{}).Order("id asc")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name LIKE ? OR phone LIKE ? OR national_id LIKE ?", like, like, like)
	}

	var customers []models.Customer
	if c.Query("all") == "true" {
		if err := query.Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить покупателей"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": customers})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить покупателей"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, customers, totalRows))
}

// GetCustomerHandler возвращает покупателя вместе с его договорами.
func GetCustomerHandler(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer
	if err := config.DB.Preload("Contracts").First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Покупатель не найден"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomerHandler создает покупателя после проверки телефона и удостоверения.
func CreateCustomerHandler(c *gin.Context) {
	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckCustomer(input.Phone, input.NationalID); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	customer := models.Customer{
		FullName:   input.FullName,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		Address:    input.Address,
		Email:      input.Email,
		Notes:      input.Notes,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать покупателя: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomerHandler обновляет данные покупателя.
func UpdateCustomerHandler(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Покупатель не найден"})
		return
	}

	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckCustomer(input.Phone, input.NationalID); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	customer.FullName = input.FullName
	customer.Phone = input.Phone
	customer.NationalID = input.NationalID
	customer.Address = input.Address
	customer.Email = input.Email
	customer.Notes = input.Notes

	if err := config.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить покупателя: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomerHandler мягко удаляет покупателя, если у него нет активных договоров.
func DeleteCustomerHandler(c *gin.Context) {
	id := c.Param("id")

	var activeContracts int64
	config.DB.Model(&models.Contract{}).
		Where("customer_id = ? AND status = ?", id, models.ContractStatusActive).
		Count(&activeContracts)
	if activeContracts > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "У покупателя есть активные договоры, удаление невозможно"})
		return
	}

	if result := config.DB.Delete(&models.Customer{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить покупателя"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Покупатель не найден"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Покупатель удален"})
	}
}

// ExportCustomersHandler выгружает список покупателей в Excel.
func ExportCustomersHandler(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("full_name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить покупателей"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Покупатели"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ФИО", "Телефон", "Удостоверение", "Адрес", "Email", "Примечания"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, cust := range customers {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), cust.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), cust.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), cust.NationalID)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), cust.Address)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), cust.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), cust.Notes)
	}

	fileName := fmt.Sprintf("customers_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось записать Excel-файл"})
	}
}
