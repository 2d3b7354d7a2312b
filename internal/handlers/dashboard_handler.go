package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"aqarat-crm/config"
	"aqarat-crm/internal/finance"

	"github.com/gin-gonic/gin"
)

const dashboardCacheKey = "dashboard:kpi"

// DashboardKPIHandler возвращает сводку показателей для главного экрана.
// Снимок кэшируется в Redis на минуту, чтобы не гонять агрегаты на каждый запрос.
func DashboardKPIHandler(c *gin.Context) {
	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, dashboardCacheKey).Result(); err == nil {
			var snapshot finance.KPISnapshot
			if json.Unmarshal([]byte(cached), &snapshot) == nil {
				c.JSON(http.StatusOK, snapshot)
				return
			}
		}
	}

	snapshot, err := finance.DashboardKPIs(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось собрать показатели"})
		return
	}

	if config.RDB != nil {
		if payload, err := json.Marshal(snapshot); err == nil {
			if err := config.RDB.Set(config.Ctx, dashboardCacheKey, payload, time.Minute).Err(); err != nil {
				slog.Warn("Не удалось закэшировать показатели", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

// SalesSummaryHandler возвращает итоги продаж.
func SalesSummaryHandler(c *gin.Context) {
	summary, err := finance.TotalSales(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось собрать итоги продаж"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UnitCountsHandler возвращает количество объектов по статусам.
func UnitCountsHandler(c *gin.Context) {
	counts, err := finance.UnitCounts(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать объекты"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
