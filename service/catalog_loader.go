package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"skip-checkout/catalog"
	"skip-checkout/models"
)

// DefaultCatalogAPIURL is the skips-by-location endpoint of the remote service
const DefaultCatalogAPIURL = "https://app.wewantwaste.co.uk/api/skips/by-location"

// maxCatalogBody bounds how much of an upstream response is read
const maxCatalogBody = 4 << 20

// CatalogAPILoader fetches skips from the remote skips API
type CatalogAPILoader struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Ensure CatalogAPILoader implements catalog.Loader
var _ catalog.Loader = (*CatalogAPILoader)(nil)

// NewCatalogAPILoader creates a loader for baseURL. ratePerSecond throttles
// upstream calls shared by all sessions; zero or less disables throttling.
func NewCatalogAPILoader(baseURL string, timeout time.Duration, ratePerSecond float64) *CatalogAPILoader {
	if baseURL == "" {
		baseURL = DefaultCatalogAPIURL
	}
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &CatalogAPILoader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Load performs one GET ?postcode=&area= against the API. There is no retry.
func (l *CatalogAPILoader) Load(ctx context.Context, loc models.Location) ([]models.Skip, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "waiting for catalog rate limiter")
	}

	reqURL, err := l.requestURL(loc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building catalog request")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", reqURL).Msg("fetching skips")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching skips")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("skips API returned status %d: %s", resp.StatusCode, string(body))
	}

	var skips []models.Skip
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCatalogBody)).Decode(&skips); err != nil {
		return nil, errors.Wrap(err, "decoding skips")
	}
	return skips, nil
}

func (l *CatalogAPILoader) requestURL(loc models.Location) (string, error) {
	u, err := url.Parse(l.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "parsing catalog API url %q", l.baseURL)
	}
	q := u.Query()
	q.Set("postcode", loc.Postcode)
	q.Set("area", loc.Area)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
