// aqarat-crm/internal/routes/router.go
package routes

import (
	"aqarat-crm/internal/handlers"
	"aqarat-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter собирает gin-движок: публичные маршруты, защищенный API
// и единые обработчики ошибок.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.RecoveryHandler))

	r.HandleMethodNotAllowed = true
	r.NoRoute(handlers.NotFoundHandler)
	r.NoMethod(handlers.MethodNotAllowedHandler)

	// Публичные маршруты — аутентификация не требуется
	r.POST("/auth/login", handlers.LoginHandler)
	r.POST("/auth/register", handlers.RegisterHandler)

	// Все остальное — только с валидным токеном
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/auth/logout", handlers.LogoutHandler)
		authorized.GET("/auth/me", handlers.MeHandler)

		RegisterDashboardRoutes(authorized)
		RegisterAPIRoutes(authorized)
	}

	return r
}
