package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skip-checkout/models"
	"skip-checkout/progress"
)

func TestBuildQuoteData(t *testing.T) {
	model, err := progress.New(progress.StepSelectSkip)
	require.NoError(t, err)

	skip := models.Skip{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 1200, VAT: 20, Postcode: "NR32", Area: "Lowestoft", AllowedOnRoad: true}
	data, err := BuildQuoteData("abc", skip, model)
	require.NoError(t, err)

	assert.Equal(t, "£1,200", data.BasePrice)
	assert.Equal(t, "£240", data.TaxAmount)
	assert.Equal(t, "£1,440", data.Total)
	assert.Len(t, data.Steps, 6)
}

func TestBuildQuoteDataRejectsNegativePrice(t *testing.T) {
	_, err := BuildQuoteData("abc", models.Skip{PriceBeforeVAT: -1}, progress.Clamp(3))
	assert.Error(t, err)
}

func TestRenderQuoteHTML(t *testing.T) {
	skip := models.Skip{ID: 1, Size: 6, HirePeriodDays: 7, PriceBeforeVAT: 200, VAT: 20, Postcode: "NR32", Area: "Lowestoft"}
	data, err := BuildQuoteData("ref-1", skip, progress.Clamp(3))
	require.NoError(t, err)

	html, err := NewQuoteService("http://localhost:8080", "").RenderQuoteHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, "6 Yard Skip")
	assert.Contains(t, html, "NR32 - Lowestoft")
	assert.Contains(t, html, "£240")
	assert.Contains(t, html, "VAT (20%)")
	assert.Contains(t, html, `<li class="current">Select Skip</li>`)
	assert.Contains(t, html, `<li class="completed">Postcode</li>`)
	assert.Contains(t, html, "Private Property Only")
}
