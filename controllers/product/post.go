package productController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/models"
	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// CreateProduct creates a product from a multipart form with an optional
// "imagen" file. POST /productos (admin).
func CreateProduct(db *gorm.DB, uploads storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm(fieldName)
		description := c.PostForm(fieldDescription)
		priceStr := c.PostForm(fieldPrice)
		stockStr := c.PostForm(fieldStock)
		if name == "" || description == "" || priceStr == "" || stockStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Por favor, introduce todos los campos requeridos: nombre, descripcion, precio y stock",
			})
			return
		}

		price := parseFloatField(priceStr)
		if price == nil || *price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Precio inválido"})
			return
		}
		stock := parseIntField(stockStr)
		if stock == nil || *stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock inválido"})
			return
		}

		discountPct := parseFloatField(c.PostForm(fieldDiscountPct))
		if discountPct != nil && (*discountPct < 0 || *discountPct > 100) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Porcentaje de descuento inválido"})
			return
		}

		imageURL, ok := uploadImage(c, uploads)
		if !ok {
			return
		}

		product := models.Product{
			Name:          name,
			Description:   description,
			Price:         *price,
			Stock:         *stock,
			Image:         imageURL,
			Category:      c.PostForm(fieldCategory),
			DiscountPct:   discountPct,
			DiscountStart: parseTimeField(c.PostForm(fieldDiscountStart)),
			DiscountEnd:   parseTimeField(c.PostForm(fieldDiscountEnd)),
		}
		product.RecomputeDiscount(time.Now())

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
