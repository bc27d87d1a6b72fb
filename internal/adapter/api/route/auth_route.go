package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterAuthRoutes registra as rotas de autenticação e cadastro
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController, authMw gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.GET("/me", authMw, authController.Me)
	}
}
