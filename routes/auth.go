package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/config"
	authControllers "github.com/carlosrios23/ecommerce-backend-2/controllers/auth"
)

// SetupAuthRoutes registers the public /auth/* endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/registro", authControllers.Register(db, cfg))
		authGroup.POST("/login", authControllers.Login(db, cfg))
	}
}
