package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned delivery URL",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/ecommerce_products/zapatos-1712345678.png",
			"ecommerce_products/zapatos-1712345678",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/ecommerce_products/camisa-99.jpg",
			"ecommerce_products/camisa-99",
		},
		{
			"no folder",
			"https://res.cloudinary.com/demo/image/upload/v1/foto.webp",
			"foto",
		},
		{
			"no extension",
			"https://res.cloudinary.com/demo/image/upload/v1/carpeta/foto",
			"carpeta/foto",
		},
		{
			"missing upload marker",
			"https://example.com/images/foto.png",
			"",
		},
		{
			"upload is the last segment",
			"https://res.cloudinary.com/demo/image/upload",
			"",
		},
		{
			"v-prefixed folder is not a version",
			"https://res.cloudinary.com/demo/image/upload/verano/foto.png",
			"verano/foto",
		},
		{
			"empty url",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPublicID(tt.url))
		})
	}
}
