package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/config"
	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// SetupRoutes wires every API route group under the /api prefix.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, uploads storage.Uploader) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg)
	SetupProductRoutes(api, db, cfg, uploads)
	SetupCartRoutes(api, db, cfg)
}
