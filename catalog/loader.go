package catalog

import (
	"context"

	"github.com/rs/zerolog/log"

	"skip-checkout/metrics"
	"skip-checkout/models"
)

// Loader fetches the skips offered at a location
type Loader interface {
	Load(ctx context.Context, loc models.Location) ([]models.Skip, error)
}

// LoadStatus is what the core can see of a catalog load
type LoadStatus int

const (
	StatusNotLoaded LoadStatus = iota
	StatusLoaded
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "not_loaded"
	}
}

// MarshalText renders the status by name in JSON views
func (s LoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LoadStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "loaded":
		*s = StatusLoaded
	case "failed":
		*s = StatusFailed
	default:
		*s = StatusNotLoaded
	}
	return nil
}

// LoadOrEmpty runs a single best-effort load. Any failure, including an
// invalid payload, is logged and degrades to an empty snapshot.
func LoadOrEmpty(ctx context.Context, loader Loader, loc models.Location) (*Snapshot, LoadStatus) {
	skips, err := loader.Load(ctx, loc)
	if err == nil {
		var snap *Snapshot
		snap, err = NewSnapshot(skips)
		if err == nil {
			log.Info().
				Str("postcode", loc.Postcode).
				Str("area", loc.Area).
				Int("skips", snap.Len()).
				Int("available", len(snap.Available())).
				Msg("catalog loaded")
			metrics.Incr("catalog.load", []string{"status:loaded"})
			metrics.Gauge("catalog.available", float64(len(snap.Available())), nil)
			return snap, StatusLoaded
		}
	}

	log.Error().Err(err).
		Str("postcode", loc.Postcode).
		Str("area", loc.Area).
		Msg("catalog load failed, continuing with empty catalog")
	metrics.Incr("catalog.load", []string{"status:failed"})
	return Empty(), StatusFailed
}
