// aqarat-crm/internal/handlers/permission_handler.go
package handlers

import (
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
)

// PermissionInput — тело запроса на создание и обновление права.
// Категория обязательна: по ней список группируется на странице ролей
// (Договоры, Казна, Партнеры и т.д.).
type PermissionInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

// PermissionGroup — одна категория прав в сгруппированном ответе.
type PermissionGroup struct {
	Category    string              `json:"category"`
	Permissions []models.Permission `json:"permissions"`
}

// ListPermissionsHandler возвращает права системы. С параметром
// ?grouped=true ответ собирается по категориям в порядке их появления,
// иначе отдается плоский отсортированный список.
func ListPermissionsHandler(c *gin.Context) {
	var permissions []models.Permission
	if err := config.DB.Order("category asc, name asc").Find(&permissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить права"})
		return
	}
	if permissions == nil {
		permissions = make([]models.Permission, 0)
	}

	if c.Query("grouped") != "true" {
		c.JSON(http.StatusOK, permissions)
		return
	}

	groups := make([]PermissionGroup, 0)
	for _, p := range permissions {
		if n := len(groups); n > 0 && groups[n-1].Category == p.Category {
			groups[n-1].Permissions = append(groups[n-1].Permissions, p)
			continue
		}
		groups = append(groups, PermissionGroup{
			Category:    p.Category,
			Permissions: []models.Permission{p},
		})
	}
	c.JSON(http.StatusOK, groups)
}

// CreatePermissionHandler регистрирует новое право. Имя права должно
// быть уникальным: под ним его ищет PermissionMiddleware.
func CreatePermissionHandler(c *gin.Context) {
	var input PermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int64
	config.DB.Model(&models.Permission{}).Where("name = ?", input.Name).Count(&exists)
	if exists > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Право с таким именем уже существует"})
		return
	}

	permission := models.Permission{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
	}
	if err := config.DB.Create(&permission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать право"})
		return
	}
	c.JSON(http.StatusCreated, permission)
}

// UpdatePermissionHandler правит описание и категорию права.
func UpdatePermissionHandler(c *gin.Context) {
	id := c.Param("id")
	var permission models.Permission
	if err := config.DB.First(&permission, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Право не найдено"})
		return
	}

	var input PermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permission.Name = input.Name
	permission.Description = input.Description
	permission.Category = input.Category
	if err := config.DB.Save(&permission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить право"})
		return
	}
	c.JSON(http.StatusOK, permission)
}

// DeletePermissionHandler удаляет право, если оно не назначено ни одной роли.
func DeletePermissionHandler(c *gin.Context) {
	id := c.Param("id")

	var assigned int64
	config.DB.Table("role_permissions").Where("permission_id = ?", id).Count(&assigned)
	if assigned > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Право назначено ролям и не может быть удалено"})
		return
	}

	result := config.DB.Delete(&models.Permission{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить право"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Право не найдено"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Право удалено"})
}
