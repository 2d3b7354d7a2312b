// aqarat-crm/internal/routes/dashboard_routes.go
package routes

import (
	"aqarat-crm/internal/handlers"
	"aqarat-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes регистрирует маршруты сводных показателей.
func RegisterDashboardRoutes(api *gin.RouterGroup) {
	dashboard := api.Group("/api/dashboard")
	dashboard.Use(middleware.PermissionMiddleware("dashboard_view"))
	{
		dashboard.GET("/kpi", handlers.DashboardKPIHandler)
		dashboard.GET("/sales", handlers.SalesSummaryHandler)
		dashboard.GET("/units", handlers.UnitCountsHandler)
	}
}
