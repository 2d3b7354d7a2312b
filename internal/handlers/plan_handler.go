package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlanInput определяет тело запроса на создание/обновление шаблона рассрочки.
type PlanInput struct {
	Name  string `json:"name" binding:"required"`
	Lines []struct {
		MonthOffset int    `json:"monthOffset" binding:"gte=0"`
		Day         int    `json:"day" binding:"gte=0,lte=31"`
		Formula     string `json:"formula" binding:"required"`
	} `json:"lines" binding:"required,min=1"`
}

// validatePlanFormulas проверяет, что каждая формула хотя бы разбирается.
func validatePlanFormulas(input *PlanInput) error {
	for _, line := range input.Lines {
		if _, err := govaluate.NewEvaluableExpression(line.Formula); err != nil {
			return err
		}
	}
	return nil
}

// ListPlansHandler возвращает шаблоны рассрочки со строками.
func ListPlansHandler(c *gin.Context) {
	var plans []models.InstallmentPlan
	if err := config.DB.Preload("Lines").Order("name asc").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить шаблоны"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// CreatePlanHandler создает шаблон рассрочки вместе со строками.
func CreatePlanHandler(c *gin.Context) {
	var input PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}
	if err := validatePlanFormulas(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка в формуле: " + err.Error()})
		return
	}

	plan := models.InstallmentPlan{Name: input.Name}
	for _, line := range input.Lines {
		plan.Lines = append(plan.Lines, models.PlanLine{
			MonthOffset: line.MonthOffset,
			Day:         line.Day,
			Formula:     line.Formula,
		})
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать шаблон: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlanHandler заменяет шаблон: имя и полный набор строк.
func UpdatePlanHandler(c *gin.Context) {
	id := c.Param("id")
	var plan models.InstallmentPlan
	if err := config.DB.First(&plan, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Шаблон не найден"})
		return
	}

	var input PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}
	if err := validatePlanFormulas(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка в формуле: " + err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&plan).Update("name", input.Name).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.PlanLine{}).Error; err != nil {
			return err
		}
		lines := make([]models.PlanLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			lines = append(lines, models.PlanLine{
				PlanID:      plan.ID,
				MonthOffset: line.MonthOffset,
				Day:         line.Day,
				Formula:     line.Formula,
			})
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить шаблон: " + err.Error()})
		return
	}

	config.DB.Preload("Lines").First(&plan, plan.ID)
	c.JSON(http.StatusOK, plan)
}

// DeletePlanHandler удаляет шаблон, если на него не ссылаются договоры.
func DeletePlanHandler(c *gin.Context) {
	id := c.Param("id")

	var used int64
	config.DB.Model(&models.Contract{}).Where("plan_id = ?", id).Count(&used)
	if used > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Шаблон используется договорами"})
		return
	}

	if result := config.DB.Select("Lines").Delete(&models.InstallmentPlan{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить шаблон"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Шаблон не найден"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Шаблон удален"})
	}
}
