package productController

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carlosrios23/ecommerce-backend-2/storage"
)

// Multipart form field names accepted by the create/update endpoints.
const (
	fieldName          = "nombre"
	fieldDescription   = "descripcion"
	fieldPrice         = "precio"
	fieldStock         = "stock"
	fieldCategory      = "categoria"
	fieldDiscountPct   = "porcentajeDescuento"
	fieldDiscountStart = "fechaInicioDescuento"
	fieldDiscountEnd   = "fechaFinDescuento"
	fieldImage         = "imagen"
)

func parseFloatField(val string) *float64 {
	if val == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return &f
	}
	return nil
}

func parseIntField(val string) *int {
	if val == "" {
		return nil
	}
	if i, err := strconv.Atoi(val); err == nil {
		return &i
	}
	return nil
}

// parseTimeField accepts RFC 3339 or a plain date.
func parseTimeField(val string) *time.Time {
	if val == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t
	}
	return nil
}

// uploadImage pushes the request's optional "imagen" file to the blob store
// and returns its public URL. Returns ("", nil) when no file was sent; writes
// the error response itself when validation or the upload fails.
func uploadImage(c *gin.Context, uploads storage.Uploader) (string, bool) {
	fileHeader, err := c.FormFile(fieldImage)
	if err != nil {
		return "", true // no file attached
	}

	if err := storage.ValidateImage(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return "", false
	}
	defer file.Close()

	publicID := storage.PublicIDFor(fileHeader.Filename, time.Now())
	format := storage.NormalizeFormat(fileHeader.Header.Get("Content-Type"))

	url, err := uploads.Upload(c.Request.Context(), file, publicID, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return "", false
	}
	return url, true
}
