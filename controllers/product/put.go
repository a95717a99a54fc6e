package productController

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/models"
	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// UpdateProduct applies a partial multipart update by ID. A new "imagen" file
// replaces the stored reference; the previous blob is left in place (it is
// only removed when the product itself is deleted). PUT /productos/:id (admin).
func UpdateProduct(db *gorm.DB, uploads storage.Uploader) gin.HandlerFunc {
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

		if v := c.PostForm(fieldName); v != "" {
			product.Name = v
		}
		if v := c.PostForm(fieldDescription); v != "" {
			product.Description = v
		}
		if v := parseFloatField(c.PostForm(fieldPrice)); v != nil {
			if *v < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Precio inválido"})
				return
			}
			product.Price = *v
		}
		if v := parseIntField(c.PostForm(fieldStock)); v != nil {
			if *v < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock inválido"})
				return
			}
			product.Stock = *v
		}
		if v := c.PostForm(fieldCategory); v != "" {
			product.Category = v
		}

		// Discount fields follow the original contract: an empty value clears
		// the field, a provided value replaces it.
		if _, present := c.GetPostForm(fieldDiscountPct); present {
			pct := parseFloatField(c.PostForm(fieldDiscountPct))
			if pct != nil && (*pct < 0 || *pct > 100) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Porcentaje de descuento inválido"})
				return
			}
			product.DiscountPct = pct
		}
		if _, present := c.GetPostForm(fieldDiscountStart); present {
			product.DiscountStart = parseTimeField(c.PostForm(fieldDiscountStart))
		}
		if _, present := c.GetPostForm(fieldDiscountEnd); present {
			product.DiscountEnd = parseTimeField(c.PostForm(fieldDiscountEnd))
		}

		imageURL, ok := uploadImage(c, uploads)
		if !ok {
			return
		}
		if imageURL != "" {
			product.Image = imageURL
		}

		product.RecomputeDiscount(time.Now())

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
