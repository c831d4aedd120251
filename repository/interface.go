package repository

import (
	"context"

	"skip-checkout/models"
)

// SkipRepositoryInterface defines the contract for reading skips from the database
type SkipRepositoryInterface interface {
	Load(ctx context.Context, loc models.Location) ([]models.Skip, error)
}
