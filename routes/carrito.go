package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/config"
	cartControllers "github.com/carlosrios23/ecommerce-backend-2/controllers/cart"
	"github.com/carlosrios23/ecommerce-backend-2/middleware"
)

// SetupCartRoutes registers the /carrito endpoints. All of them require an
// authenticated user; the cart is resolved from the token's user id.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	carrito := api.Group("/carrito")
	carrito.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		carrito.GET("", cartControllers.GetOrCreateCart(db))
		carrito.POST("/items", cartControllers.AddCartItem(db))
		carrito.PUT("/items/:productoId", cartControllers.UpdateCartItemQuantity(db))
		carrito.DELETE("/items/:productoId", cartControllers.RemoveCartItem(db))
		carrito.POST("/comprar", cartControllers.Checkout(db))
		carrito.DELETE("/vaciar", cartControllers.ClearCart(db))
	}
}
