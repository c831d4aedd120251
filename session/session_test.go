package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skip-checkout/catalog"
	"skip-checkout/journey"
	"skip-checkout/models"
	"skip-checkout/progress"
)

type fakeLoader struct {
	skips []models.Skip
	err   error
	calls int
	last  models.Location
}

func (f *fakeLoader) Load(ctx context.Context, loc models.Location) ([]models.Skip, error) {
	f.calls++
	f.last = loc
	return f.skips, f.err
}

var lowestoft = models.Location{Postcode: "NR32", Area: "Lowestoft"}

func scenarioLoader() *fakeLoader {
	return &fakeLoader{skips: []models.Skip{
		{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 200, VAT: 20, Postcode: "NR32", AllowedOnRoad: true},
		{ID: 2, Size: 6, HirePeriodDays: 14, PriceBeforeVAT: 150, VAT: 20, Postcode: "NR32", Forbidden: true, AllowsHeavyWaste: true},
	}}
}

func mount(t *testing.T, loader catalog.Loader) *Session {
	t.Helper()
	s, err := Mount(context.Background(), "test-session", loader, lowestoft, progress.StepSelectSkip)
	require.NoError(t, err)
	return s
}

func TestEndToEndScenario(t *testing.T) {
	loader := scenarioLoader()
	s := mount(t, loader)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, lowestoft, loader.last)

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusLoaded, view.Catalog.Status)
	assert.Equal(t, "NR32", view.Catalog.Postcode)
	assert.Equal(t, 1, view.Catalog.AvailableCount)
	require.Len(t, view.Catalog.Items, 2)

	first := view.Catalog.Items[0]
	assert.True(t, first.IsAvailable)
	assert.Equal(t, int64(240), first.DisplayPrice.Total)
	assert.Equal(t, int64(40), first.DisplayPrice.TaxAmount)

	second := view.Catalog.Items[1]
	assert.False(t, second.IsAvailable)
	assert.Contains(t, second.Badges, BadgeNotAvailable)

	assert.False(t, s.Select(2))
	_, ok := s.CurrentSelection()
	assert.False(t, ok)

	assert.True(t, s.Select(1))
	skip, ok := s.CurrentSelection()
	require.True(t, ok)
	assert.Equal(t, 1, skip.ID)
	assert.True(t, s.IsSelected(1))
}

func TestSummaryFollowsSelection(t *testing.T) {
	s := mount(t, scenarioLoader())

	summary, err := s.Summary()
	require.NoError(t, err)
	assert.False(t, summary.Selected)
	assert.Equal(t, int64(0), summary.DisplayPrice.Total)

	s.Select(1)
	summary, err = s.Summary()
	require.NoError(t, err)
	assert.True(t, summary.Selected)
	assert.Equal(t, 4, summary.Size)
	assert.Equal(t, int64(240), summary.DisplayPrice.Total)
	assert.Equal(t, "Continue to Permit Check", summary.ContinueLabel)

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, summary, view.Summary)
	assert.True(t, view.Catalog.Items[0].IsSelected)

	s.Clear()
	summary, err = s.Summary()
	require.NoError(t, err)
	assert.False(t, summary.Selected)
}

func TestSummaryPriceMatchesCatalogPrice(t *testing.T) {
	loader := &fakeLoader{skips: []models.Skip{{ID: 9, Size: 8, PriceBeforeVAT: 5, VAT: 10}}}
	s := mount(t, loader)
	s.Select(9)

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, view.Catalog.Items[0].DisplayPrice, view.Summary.DisplayPrice)
}

func TestEmptyCatalog(t *testing.T) {
	s := mount(t, &fakeLoader{})

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusLoaded, view.Catalog.Status)
	assert.Equal(t, 0, view.Catalog.AvailableCount)
	assert.Empty(t, view.Catalog.Items)
	assert.Equal(t, "", view.Catalog.Postcode)
	assert.Equal(t, int64(0), view.Summary.DisplayPrice.Total)
}

func TestLoadFailureDegradesToEmptyCatalog(t *testing.T) {
	s := mount(t, &fakeLoader{err: errors.New("dial tcp: timeout")})

	assert.Equal(t, catalog.StatusFailed, s.Status())
	view, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, view.Catalog.Items)
	assert.False(t, s.Select(1))
}

func TestContinueNeedsSelection(t *testing.T) {
	s := mount(t, scenarioLoader())

	_, err := s.Continue()
	assert.True(t, errors.Is(err, journey.ErrNoSelection))

	s.Select(1)
	model, err := s.Continue()
	require.NoError(t, err)
	assert.Equal(t, progress.StepPermitCheck, model.Current())

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, progress.StepPermitCheck, view.CurrentStep)
	assert.Equal(t, 3, view.Progress.CompletedCount)

	model, err = s.Back()
	require.NoError(t, err)
	assert.Equal(t, progress.StepSelectSkip, model.Current())
	_, ok := s.CurrentSelection()
	assert.True(t, ok)
}

func TestViewSteps(t *testing.T) {
	s := mount(t, scenarioLoader())

	view, err := s.View()
	require.NoError(t, err)
	require.Len(t, view.Steps, 6)
	assert.True(t, view.Steps[0].Completed)
	assert.True(t, view.Steps[1].Completed)
	assert.True(t, view.Steps[2].Current)
	assert.Equal(t, 2, view.Progress.CompletedCount)
	assert.InDelta(t, 2.0/6.0, view.Progress.ProgressFraction, 1e-9)
}

func TestMountRejectsOutOfRangeStep(t *testing.T) {
	loader := scenarioLoader()
	_, err := Mount(context.Background(), "x", loader, lowestoft, 9)
	assert.True(t, errors.Is(err, progress.ErrStepOutOfRange))
	assert.Equal(t, 0, loader.calls)
}

func TestBadges(t *testing.T) {
	assert.Equal(t, []string{BadgePrivateProperty}, Badges(models.Skip{}))
	assert.Equal(t, []string{BadgeNotAvailable, BadgeRoadPlacement, BadgeHeavyWaste},
		Badges(models.Skip{Forbidden: true, AllowedOnRoad: true, AllowsHeavyWaste: true}))
}
