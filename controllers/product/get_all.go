package productController

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/models"
)

// Sortable columns exposed through the sort_by query param.
var sortColumns = map[string]string{
	"nombre":     "name",
	"precio":     "price",
	"stock":      "stock",
	"created_at": "created_at",
}

// GetProducts lists the catalog with optional filtering and sorting.
// GET /productos?search=&categoria=&min_precio=&max_precio=&sort_by=&order=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if search := c.Query("search"); search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
				likePattern, likePattern,
			)
		}

		if category := c.Query("categoria"); category != "" {
			query = query.Where("category = ?", category)
		}

		if v := parseFloatField(c.Query("min_precio")); v != nil {
			query = query.Where("price >= ?", *v)
		} else if c.Query("min_precio") != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_precio inválido"})
			return
		}
		if v := parseFloatField(c.Query("max_precio")); v != nil {
			query = query.Where("price <= ?", *v)
		} else if c.Query("max_precio") != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_precio inválido"})
			return
		}

		column, ok := sortColumns[c.DefaultQuery("sort_by", "created_at")]
		if !ok {
			column = "created_at"
		}
		order := strings.ToLower(c.DefaultQuery("order", "desc"))
		if order != "asc" && order != "desc" {
			order = "desc"
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", column, order)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
