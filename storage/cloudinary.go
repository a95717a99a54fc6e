package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageSize caps uploads at 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

const uploadFolder = "ecommerce_products"

var allowedFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Uploader stores image blobs and returns a publicly resolvable URL per upload.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, publicID, format string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryUploader is the production Uploader backed by Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID, format string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   uploadFolder,
		Format:   format,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// ValidateImage rejects anything that is not an image or exceeds the size cap.
// Runs before any upload call so bad files never reach the blob store.
func ValidateImage(fh *multipart.FileHeader) error {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("solo se permiten archivos de imagen (JPG, PNG, GIF, etc.)")
	}
	if fh.Size > MaxImageSize {
		return fmt.Errorf("la imagen supera el tamaño máximo de 5MB")
	}
	return nil
}

// NormalizeFormat maps a content type to a storage format from the allow-list,
// defaulting to png for anything unexpected.
func NormalizeFormat(contentType string) string {
	_, subtype, found := strings.Cut(contentType, "/")
	if found && allowedFormats[subtype] {
		return subtype
	}
	return "png"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// PublicIDFor derives a collision-resistant storage key from the original
// filename: extension dropped, non-alphanumerics collapsed to single dashes,
// timestamp appended.
func PublicIDFor(filename string, now time.Time) string {
	base := filename
	if dot := strings.LastIndex(base, "."); dot > -1 {
		base = base[:dot]
	}
	base = strings.Trim(nonAlphanumeric.ReplaceAllString(base, "-"), "-")
	if base == "" {
		base = "imagen"
	}
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}
