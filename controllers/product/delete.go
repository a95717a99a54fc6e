package productController

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/models"
	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// DeleteProduct removes a product and, best-effort, its image blob. A failed
// blob deletion is logged and never blocks the catalog delete.
// DELETE /productos/:id (admin).
func DeleteProduct(db *gorm.DB, uploads storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		if product.Image != "" {
			if publicID := storage.ExtractPublicID(product.Image); publicID != "" {
				if err := uploads.Destroy(c.Request.Context(), publicID); err != nil {
					log.Printf("⚠️ Failed to delete image %s: %v", publicID, err)
				}
			} else {
				log.Printf("⚠️ Could not extract public ID from image URL: %s", product.Image)
			}
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"mensaje": "Producto eliminado exitosamente"})
	}
}
