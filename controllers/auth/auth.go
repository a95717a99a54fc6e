package authControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/config"
	"github.com/carlosrios23/ecommerce-backend-2/models"
)

type RegisterInput struct {
	Name     string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/registro
func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Role:     models.RoleUser,
		}
		user.Normalize()

		// Case-insensitive duplicate check: emails are stored lowercased.
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El mail ya esta registrado"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
			return
		}

		if cfg.IsAdminEmail(user.Email) {
			user.Role = models.RoleAdmin
		}

		if err := user.HashPassword(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		token, err := issueToken(cfg.JWTSecret, user.ID, user.Role, 8*24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"mensaje": "Usuario registrado exitosamente",
			"token":   token,
			"usuario": userResponse(&user),
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		lookup := models.User{Email: input.Email}
		lookup.Normalize()

		// One undifferentiated failure for unknown email and wrong password.
		var user models.User
		err := db.Where("email = ?", lookup.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.MatchPassword(input.Password)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Credenciales invalidas (Email o contraseña incorrectos)"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		token, err := issueToken(cfg.JWTSecret, user.ID, user.Role, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mensaje": "Inicio de sesion exitoso",
			"token":   token,
			"usuario": userResponse(&user),
		})
	}
}

func issueToken(secret, userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":     u.ID,
		"nombre": u.Name,
		"email":  u.Email,
		"role":   u.Role,
	}
}
