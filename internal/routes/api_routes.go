// aqarat-crm/internal/routes/api_routes.go
package routes

import (
	"aqarat-crm/internal/handlers"
	"aqarat-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	// Группа для всех API-запросов с префиксом /api
	apiGroup := api.Group("/api")
	{
		// --- ПОКУПАТЕЛИ ---
		customers := apiGroup.Group("/customers")
		customers.Use(middleware.PermissionMiddleware("customers_view"), middleware.AuditMiddleware("customer"))
		{
			customers.GET("", handlers.ListCustomersHandler)
			customers.GET("/export", handlers.ExportCustomersHandler)
			customers.POST("", middleware.PermissionMiddleware("customers_create"), handlers.CreateCustomerHandler)
			customers.GET("/:id", handlers.GetCustomerHandler)
			customers.PUT("/:id", middleware.PermissionMiddleware("customers_edit"), handlers.UpdateCustomerHandler)
			customers.DELETE("/:id", middleware.PermissionMiddleware("customers_delete"), handlers.DeleteCustomerHandler)
		}

		// --- ОБЪЕКТЫ НЕДВИЖИМОСТИ ---
		units := apiGroup.Group("/units")
		units.Use(middleware.PermissionMiddleware("units_view"), middleware.AuditMiddleware("unit"))
		{
			units.GET("", handlers.ListUnitsHandler)
			units.POST("", middleware.PermissionMiddleware("units_create"), handlers.CreateUnitHandler)
			units.GET("/:id", handlers.GetUnitHandler)
			units.PUT("/:id", middleware.PermissionMiddleware("units_edit"), handlers.UpdateUnitHandler)
			units.DELETE("/:id", middleware.PermissionMiddleware("units_delete"), handlers.DeleteUnitHandler)
		}

		// --- МАКЛЕРЫ ---
		brokers := apiGroup.Group("/brokers")
		brokers.Use(middleware.PermissionMiddleware("brokers_view"), middleware.AuditMiddleware("broker"))
		{
			brokers.GET("", handlers.ListBrokersHandler)
			brokers.POST("", middleware.PermissionMiddleware("brokers_create"), handlers.CreateBrokerHandler)
			brokers.GET("/:id", handlers.GetBrokerHandler)
			brokers.PUT("/:id", middleware.PermissionMiddleware("brokers_edit"), handlers.UpdateBrokerHandler)
			brokers.DELETE("/:id", middleware.PermissionMiddleware("brokers_delete"), handlers.DeleteBrokerHandler)
		}

		// --- ДОГОВОРЫ ---
		contracts := apiGroup.Group("/contracts")
		contracts.Use(middleware.PermissionMiddleware("contracts_view"), middleware.AuditMiddleware("contract"))
		{
			contracts.GET("", handlers.ListContractsHandler)
			contracts.POST("", middleware.PermissionMiddleware("contracts_create"), handlers.CreateContractHandler)
			contracts.GET("/:id", handlers.GetContractHandler)
			contracts.PUT("/:id", middleware.PermissionMiddleware("contracts_edit"), handlers.UpdateContractHandler)
			contracts.DELETE("/:id", middleware.PermissionMiddleware("contracts_delete"), handlers.DeleteContractHandler)
			contracts.POST("/:id/cancel", middleware.PermissionMiddleware("contracts_edit"), handlers.CancelContractHandler)
			contracts.POST("/:id/generate-schedule", middleware.PermissionMiddleware("contracts_edit"), handlers.RegenerateScheduleHandler)
		}

		// --- ШАБЛОНЫ РАССРОЧКИ ---
		plans := apiGroup.Group("/plans")
		plans.Use(middleware.PermissionMiddleware("contracts_view"))
		{
			plans.GET("", handlers.ListPlansHandler)
			plans.POST("", middleware.PermissionMiddleware("contracts_create"), handlers.CreatePlanHandler)
			plans.PUT("/:id", middleware.PermissionMiddleware("contracts_edit"), handlers.UpdatePlanHandler)
			plans.DELETE("/:id", middleware.PermissionMiddleware("contracts_delete"), handlers.DeletePlanHandler)
		}

		// --- ПЛАТЕЖИ ---
		installments := apiGroup.Group("/installments")
		installments.Use(middleware.PermissionMiddleware("installments_view"), middleware.AuditMiddleware("installment"))
		{
			installments.GET("", handlers.ListInstallmentsHandler)
			installments.GET("/export", handlers.ExportInstallmentsHandler)
			installments.POST("/:id/pay", middleware.PermissionMiddleware("installments_pay"), handlers.PayInstallmentHandler)
			installments.POST("/refresh-overdue", middleware.PermissionMiddleware("installments_edit"), handlers.RefreshOverdueHandler)
		}

		// --- КАЗНА ---
		safes := apiGroup.Group("/safes")
		safes.Use(middleware.PermissionMiddleware("treasury_view"), middleware.AuditMiddleware("safe"))
		{
			safes.GET("", handlers.ListSafesHandler)
			safes.POST("", middleware.PermissionMiddleware("treasury_edit"), handlers.CreateSafeHandler)
			safes.GET("/:id", handlers.GetSafeHandler)
			safes.PUT("/:id", middleware.PermissionMiddleware("treasury_edit"), handlers.UpdateSafeHandler)
			safes.DELETE("/:id", middleware.PermissionMiddleware("treasury_delete"), handlers.DeleteSafeHandler)
		}

		transfers := apiGroup.Group("/transfers")
		transfers.Use(middleware.PermissionMiddleware("treasury_view"), middleware.AuditMiddleware("transfer"))
		{
			transfers.GET("", handlers.ListTransfersHandler)
			transfers.POST("", middleware.PermissionMiddleware("treasury_edit"), handlers.CreateTransferHandler)
		}

		// --- ПАРТНЕРЫ ---
		partners := apiGroup.Group("/partners")
		partners.Use(middleware.PermissionMiddleware("partners_view"), middleware.AuditMiddleware("partner"))
		{
			partners.GET("", handlers.ListPartnersHandler)
			partners.POST("", middleware.PermissionMiddleware("partners_create"), handlers.CreatePartnerHandler)
			partners.GET("/:id", handlers.GetPartnerHandler)
			partners.PUT("/:id", middleware.PermissionMiddleware("partners_edit"), handlers.UpdatePartnerHandler)
			partners.DELETE("/:id", middleware.PermissionMiddleware("partners_delete"), handlers.DeletePartnerHandler)

			partners.GET("/:id/transactions", handlers.ListPartnerTxHandler)
			partners.POST("/:id/transactions", middleware.PermissionMiddleware("partners_edit"), handlers.CreatePartnerTxHandler)
			partners.GET("/:id/ledger", handlers.PartnerLedgerHandler)
			partners.POST("/:id/ledger/rebuild", middleware.PermissionMiddleware("partners_edit"), handlers.RebuildPartnerLedgerHandler)
			partners.POST("/:id/debts", middleware.PermissionMiddleware("partners_edit"), handlers.CreatePartnerDebtHandler)
			partners.POST("/:id/debts/:debtId/settle", middleware.PermissionMiddleware("partners_edit"), handlers.SettlePartnerDebtHandler)
		}

		// --- ОТЧЕТЫ ---
		reports := apiGroup.Group("/reports")
		reports.Use(middleware.PermissionMiddleware("reports_view"))
		{
			reports.GET("/download", handlers.DownloadReportHandler)
		}

		// --- НАСТРОЙКИ ---
		settings := apiGroup.Group("/settings")
		settings.Use(middleware.PermissionMiddleware("settings_view"))
		{
			settings.GET("", handlers.ListSettingsHandler)
			settings.PUT("", middleware.PermissionMiddleware("settings_edit"), handlers.UpdateSettingsHandler)
		}

		// --- ЖУРНАЛ ДЕЙСТВИЙ ---
		audit := apiGroup.Group("/audit")
		audit.Use(middleware.PermissionMiddleware("audit_view"))
		{
			audit.GET("", handlers.ListAuditLogsHandler)
		}

		// --- ПОЛЬЗОВАТЕЛИ И РОЛИ ---
		users := apiGroup.Group("/users")
		users.Use(middleware.PermissionMiddleware("users_view"))
		{
			users.GET("", handlers.ListUsersHandler)
			users.POST("", middleware.PermissionMiddleware("users_create"), handlers.CreateUserHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.PUT("/:id", middleware.PermissionMiddleware("users_edit"), handlers.UpdateUserHandler)
			users.DELETE("/:id", middleware.PermissionMiddleware("users_delete"), handlers.DeleteUserHandler)
		}

		roles := apiGroup.Group("/roles")
		roles.Use(middleware.PermissionMiddleware("roles_view"))
		{
			roles.GET("", handlers.ListRolesHandler)
			roles.POST("", middleware.PermissionMiddleware("roles_create"), handlers.CreateRoleHandler)
			roles.GET("/:id", handlers.GetRoleHandler)
			roles.PUT("/:id", middleware.PermissionMiddleware("roles_edit"), handlers.UpdateRoleHandler)
			roles.DELETE("/:id", middleware.PermissionMiddleware("roles_delete"), handlers.DeleteRoleHandler)
		}

		permissions := apiGroup.Group("/permissions")
		permissions.Use(middleware.PermissionMiddleware("permissions_view"))
		{
			permissions.GET("", handlers.ListPermissionsHandler)
			permissions.POST("", middleware.PermissionMiddleware("permissions_create"), handlers.CreatePermissionHandler)
			permissions.PUT("/:id", middleware.PermissionMiddleware("permissions_edit"), handlers.UpdatePermissionHandler)
			permissions.DELETE("/:id", middleware.PermissionMiddleware("permissions_delete"), handlers.DeletePermissionHandler)
		}
	}
}
