package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/config"
	productController "github.com/carlosrios23/ecommerce-backend-2/controllers/product"
	"github.com/carlosrios23/ecommerce-backend-2/middleware"
	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// SetupProductRoutes registers the /productos endpoints. Reads are public;
// writes require an authenticated admin.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, uploads storage.Uploader) {
	productos := api.Group("/productos")
	{
		productos.GET("", productController.GetProducts(db))
		productos.GET("/:id", productController.GetProductByID(db))

		admin := productos.Group("")
		admin.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin)
		{
			admin.POST("", productController.CreateProduct(db, uploads))
			admin.PUT("/:id", productController.UpdateProduct(db, uploads))
			admin.DELETE("/:id", productController.DeleteProduct(db, uploads))
			admin.GET("/exportar/excel", productController.ExportProductsToExcel(db))
		}
	}
}
