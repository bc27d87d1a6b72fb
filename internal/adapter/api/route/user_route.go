package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterUserRoutes registra as rotas do módulo de usuários
func RegisterUserRoutes(r *gin.RouterGroup, userController *controller.UserController, authMw gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(authMw)
	{
		users.POST("", userController.Create)
		users.GET("", userController.List)
		users.PUT("/me", userController.UpdateProfile)
	}
}
