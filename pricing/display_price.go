package pricing

import (
	"math"

	"github.com/pkg/errors"

	"skip-checkout/models"
)

// ErrNegativeAmount is returned when a price or tax rate below zero reaches the calculator
var ErrNegativeAmount = errors.New("pricing: price and tax rate must be non-negative")

// ErrAmountOverflow is returned when a price is too large to total without overflowing
var ErrAmountOverflow = errors.New("pricing: price too large to calculate")

// DisplayPrice is the price shown to the customer for a skip
type DisplayPrice struct {
	Total     int64 `json:"total"`     // Price including VAT, whole pounds
	TaxAmount int64 `json:"taxAmount"` // Total - price before VAT
}

// Calculate returns the VAT inclusive total and the VAT amount for a base price.
// The total is rounded to the nearest whole pound, halves round up, so a
// base of 5 at 10% gives a total of 6 and a tax amount of 1.
func Calculate(priceBeforeTax int64, taxRatePercent int) (DisplayPrice, error) {
	if priceBeforeTax < 0 || taxRatePercent < 0 {
		return DisplayPrice{}, errors.Wrapf(ErrNegativeAmount, "price=%d vat=%d", priceBeforeTax, taxRatePercent)
	}

	if int64(taxRatePercent) > math.MaxInt64-100 {
		return DisplayPrice{}, errors.Wrapf(ErrAmountOverflow, "vat=%d", taxRatePercent)
	}
	multiplier := int64(taxRatePercent) + 100
	if priceBeforeTax > (math.MaxInt64-50)/multiplier {
		return DisplayPrice{}, errors.Wrapf(ErrAmountOverflow, "price=%d vat=%d", priceBeforeTax, taxRatePercent)
	}

	// Integer arithmetic keeps x.5 exact: total = floor((p*(100+r) + 50) / 100)
	total := (priceBeforeTax*multiplier + 50) / 100

	return DisplayPrice{
		Total:     total,
		TaxAmount: total - priceBeforeTax,
	}, nil
}

// ForSkip calculates the display price of a skip. Every view that shows a
// price goes through here so totals never diverge.
func ForSkip(skip models.Skip) (DisplayPrice, error) {
	return Calculate(skip.PriceBeforeVAT, skip.VAT)
}
