package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"aqarat-crm/config"
	"aqarat-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoleInput — тело запроса на создание/обновление роли.
type RoleInput struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds"`
}

// ListRolesHandler fetches all roles with their associated permissions.
func ListRolesHandler(c *gin.Context) {
	var roles []models.Role

	// Preload permissions to avoid N+1 queries
	query := config.DB.Preload("Permissions").Order("name")

	if c.Query("all") == "true" {
		if err := query.Find(&roles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить роли"})
			return
		}
		if roles == nil {
			roles = make([]models.Role, 0)
		}
		c.JSON(http.StatusOK, roles)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Role{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить роли"})
		return
	}
	if roles == nil {
		roles = make([]models.Role, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, roles, totalRows))
}

// GetRoleHandler fetches a single role by its ID.
func GetRoleHandler(c *gin.Context) {
	id := c.Param("id")
	var role models.Role
	if err := config.DB.Preload("Permissions").First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Роль не найдена"})
		return
	}
	c.JSON(http.StatusOK, role)
}

// CreateRoleHandler handles the creation of a new role.
func CreateRoleHandler(c *gin.Context) {
	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role{
		Name:        input.Name,
		Description: input.Description,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		if len(input.PermissionIDs) > 0 {
			var permissions []models.Permission
			if err := tx.Where("id IN ?", input.PermissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
			if err := tx.Model(&role).Association("Permissions").Replace(permissions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать роль: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, role)
}

// UpdateRoleHandler updates a role's name and permissions.
func UpdateRoleHandler(c *gin.Context) {
	id := c.Param("id")
	var role models.Role
	if err := config.DB.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Роль не найдена"})
		return
	}

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role.Name = input.Name
	role.Description = input.Description

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		var permissions []models.Permission
		if len(input.PermissionIDs) > 0 {
			if err := tx.Where("id IN ?", input.PermissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
		}
		// Заменяем старые права на новые (или пустые, если ничего не передано)
		return tx.Model(&role).Association("Permissions").Replace(permissions)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить роль: " + err.Error()})
		return
	}

	// Сброс кэша всех пользователей, у которых есть эта роль
	if config.RDB != nil {
		go func() {
			var userIDs []uint
			config.DB.Table("user_roles").Where("role_id = ?", role.ID).Pluck("user_id", &userIDs)
			for _, userID := range userIDs {
				cacheKey := fmt.Sprintf("user:%d:data", userID)
				if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
					slog.Warn("Не удалось сбросить кэш пользователя", "error", err, "user_id", userID)
				}
			}
		}()
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRoleHandler deletes a role by its ID.
func DeleteRoleHandler(c *gin.Context) {
	id := c.Param("id")
	if result := config.DB.Delete(&models.Role{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить роль"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Роль не найдена"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Роль удалена"})
	}
}
