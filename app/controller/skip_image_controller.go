package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// SkipImageProvider returns card images for skip sizes
type SkipImageProvider interface {
	Image(size int, variant string) ([]byte, error)
}

// SkipImageController serves skip card images
type SkipImageController struct {
	images SkipImageProvider
}

// NewSkipImageController creates a new SkipImageController
func NewSkipImageController(images SkipImageProvider) *SkipImageController {
	return &SkipImageController{images: images}
}

// GetImage handles GET /skips/image?size=6&variant=thumb|medium
func (c *SkipImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	size, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("size")))
	if err != nil || size <= 0 {
		http.Error(w, "size must be a positive number of yards", http.StatusBadRequest)
		return
	}

	variant := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("variant")))
	if variant == "" {
		variant = "medium"
	}
	if variant != "thumb" && variant != "medium" {
		http.Error(w, "Invalid variant. Valid variants: thumb, medium", http.StatusBadRequest)
		return
	}

	data, err := c.images.Image(size, variant)
	if err != nil {
		log.Error().Err(err).Int("size", size).Msg("❌ GetImage: failed to load skip image")
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
