package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Card images are 4:3, sized by their width
	widthThumb  = 400
	widthMedium = 800
)

// Image variants
const (
	VariantThumb  = "thumb"
	VariantMedium = "medium"
)

// SkipImageService serves card images for skip sizes from an assets
// directory, optimizing and caching them on first use
type SkipImageService struct {
	assetsDir string
	cacheDir  string
}

// NewSkipImageService creates a new SkipImageService
func NewSkipImageService(assetsDir string) *SkipImageService {
	return &SkipImageService{
		assetsDir: assetsDir,
		cacheDir:  filepath.Join(assetsDir, "cache"),
	}
}

// GetCachePath returns the cache file path for a skip size and variant
func (s *SkipImageService) GetCachePath(size int, variant string) string {
	filename := fmt.Sprintf("skip_%d_%s.jpg", size, variant)
	return filepath.Join(s.cacheDir, filename)
}

// sourcePath finds the original image for a size: skips/<size>-yarder-skip.{jpg,jpeg,png}
func (s *SkipImageService) sourcePath(size int) string {
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		path := filepath.Join(s.assetsDir, "skips", fmt.Sprintf("%d-yarder-skip%s", size, ext))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Image returns the optimized JPEG card image for a skip size. Sizes without
// an asset get a generated placeholder.
func (s *SkipImageService) Image(size int, variant string) ([]byte, error) {
	cachePath := s.GetCachePath(size, variant)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	var img image.Image
	if path := s.sourcePath(size); path != "" {
		decoded, err := imaging.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open skip image %s", path)
		}
		img = decoded
	} else {
		log.Debug().Int("size", size).Msg("no skip image asset, using placeholder")
		img = Placeholder()
	}

	data, err := OptimizeImage(img, variant)
	if err != nil {
		return nil, err
	}

	if err := s.saveToCache(cachePath, data); err != nil {
		// The image is still served; only caching failed
		log.Warn().Err(err).Str("path", cachePath).Msg("failed to cache skip image")
	}
	return data, nil
}

func (s *SkipImageService) saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debug().Str("path", cachePath).Msg("✓ image cached")
	return nil
}

// Placeholder is the card image used when no asset exists
func Placeholder() image.Image {
	return imaging.New(widthMedium, widthMedium*3/4, color.NRGBA{R: 236, G: 253, B: 245, A: 255})
}

// OptimizeImage crops an image to a 4:3 card and encodes it as JPEG.
// variant: "thumb" or "medium"
func OptimizeImage(img image.Image, variant string) ([]byte, error) {
	var width, quality int
	switch variant {
	case VariantThumb:
		width = widthThumb
		quality = qualityThumb
	case VariantMedium:
		width = widthMedium
		quality = qualityMedium
	default:
		width = widthMedium
		quality = qualityMedium
		log.Warn().Str("variant", variant).Msg("⚠️  unknown variant, defaulting to medium")
	}

	card := imaging.Fill(img, width, width*3/4, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, card, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
