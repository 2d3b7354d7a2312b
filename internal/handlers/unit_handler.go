package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/internal/validation"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
)

// UnitInput определяет тело запроса на создание/обновление объекта.
type UnitInput struct {
	Code     string  `json:"code" binding:"required"`
	UnitType string  `json:"unitType"`
	Building string  `json:"building"`
	Floor    int     `json:"floor"`
	Area     float64 `json:"area"`
	Price    float64 `json:"price"`
	Status   string  `json:"status" binding:"omitempty,oneof=available reserved sold"`
	Notes    string  `json:"notes"`
}

// ListUnitsHandler возвращает объекты с фильтрами по статусу, типу и зданию.
func ListUnitsHandler(c *gin.Context) {
	query := config.DB.Model(&models.Unit{}).Order("code asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if unitType := c.Query("type"); unitType != "" {
		query = query.Where("unit_type = ?", unitType)
	}
	if building := c.Query("building"); building != "" {
		query = query.Where("building = ?", building)
	}

	var units []models.Unit
	if c.Query("all") == "true" {
		if err := query.Find(&units).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить объекты"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": units})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить объекты"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, units, totalRows))
}

// GetUnitHandler возвращает один объект по ID.
func GetUnitHandler(c *gin.Context) {
	id := c.Param("id")
	var unit models.Unit
	if err := config.DB.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Объект не найден"})
		return
	}
	c.JSON(http.StatusOK, unit)
}

// CreateUnitHandler создает объект недвижимости.
func CreateUnitHandler(c *gin.Context) {
	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckUnit(input.Price, input.Area); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	status := input.Status
	if status == "" {
		status = models.UnitStatusAvailable
	}

	unit := models.Unit{
		Code:     input.Code,
		UnitType: input.UnitType,
		Building: input.Building,
		Floor:    input.Floor,
		Area:     input.Area,
		Price:    input.Price,
		Status:   status,
		Notes:    input.Notes,
	}

	if err := config.DB.Create(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать объект: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// UpdateUnitHandler обновляет объект недвижимости.
func UpdateUnitHandler(c *gin.Context) {
	id := c.Param("id")
	var unit models.Unit
	if err := config.DB.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Объект не найден"})
		return
	}

	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if fieldErrs := validation.CheckUnit(input.Price, input.Area); fieldErrs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	unit.Code = input.Code
	unit.UnitType = input.UnitType
	unit.Building = input.Building
	unit.Floor = input.Floor
	unit.Area = input.Area
	unit.Price = input.Price
	if input.Status != "" {
		unit.Status = input.Status
	}
	unit.Notes = input.Notes

	if err := config.DB.Save(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить объект: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, unit)
}

// DeleteUnitHandler мягко удаляет объект, если он не продан.
func DeleteUnitHandler(c *gin.Context) {
	id := c.Param("id")
	var unit models.Unit
	if err := config.DB.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Объект не найден"})
		return
	}
	if unit.Status == models.UnitStatusSold {
		c.JSON(http.StatusConflict, gin.H{"error": "Проданный объект нельзя удалить"})
		return
	}

	if err := config.DB.Delete(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить объект"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Объект удален"})
}
