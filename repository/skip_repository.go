package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"skip-checkout/catalog"
	"skip-checkout/db"
	"skip-checkout/models"
)

// SkipRepository reads the skip catalog from PostgreSQL. It only reads.
type SkipRepository struct {
	conn *sql.DB
}

// NewSkipRepository creates a repository over conn, or db.DB when conn is nil
func NewSkipRepository(conn *sql.DB) *SkipRepository {
	return &SkipRepository{conn: conn}
}

// Ensure SkipRepository implements SkipRepositoryInterface and catalog.Loader
var (
	_ SkipRepositoryInterface = (*SkipRepository)(nil)
	_ catalog.Loader          = (*SkipRepository)(nil)
)

const skipsByLocationQuery = `
	SELECT
		id,
		size,
		hire_period_days,
		transport_cost,
		per_tonne_cost,
		price_before_vat,
		vat,
		postcode,
		COALESCE(area, '') AS area,
		forbidden,
		COALESCE(to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS'), '') AS created_at,
		COALESCE(to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS'), '') AS updated_at,
		allowed_on_road,
		allows_heavy_waste
	FROM skips
	WHERE upper(postcode) = $1
	  AND ($2::text = '' OR lower(area) = lower($2::text))
	ORDER BY size ASC, id ASC
`

// Load returns the skips for loc ordered by size
func (r *SkipRepository) Load(ctx context.Context, loc models.Location) ([]models.Skip, error) {
	conn := r.conn
	if conn == nil {
		conn = db.DB
	}
	if conn == nil {
		return nil, errors.New("skip repository: database is not initialized")
	}

	postcode := strings.ToUpper(strings.TrimSpace(loc.Postcode))
	area := strings.TrimSpace(loc.Area)
	log.Debug().Str("postcode", postcode).Str("area", area).Msg("🔍 querying skips")

	rows, err := conn.QueryContext(ctx, skipsByLocationQuery, postcode, area)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query skips")
	}
	defer rows.Close()

	skips := make([]models.Skip, 0)
	for rows.Next() {
		var skip models.Skip
		var transportCost, perTonneCost sql.NullInt64

		if err := rows.Scan(
			&skip.ID,
			&skip.Size,
			&skip.HirePeriodDays,
			&transportCost,
			&perTonneCost,
			&skip.PriceBeforeVAT,
			&skip.VAT,
			&skip.Postcode,
			&skip.Area,
			&skip.Forbidden,
			&skip.CreatedAt,
			&skip.UpdatedAt,
			&skip.AllowedOnRoad,
			&skip.AllowsHeavyWaste,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan skip")
		}

		skip.TransportCost = nullableInt(transportCost)
		skip.PerTonneCost = nullableInt(perTonneCost)
		skips = append(skips, skip)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate skips")
	}

	log.Debug().Int("count", len(skips)).Str("postcode", postcode).Msg("✓ fetched skips")
	return skips, nil
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
