package catalog

import "skip-checkout/models"

// IsAvailable reports whether a skip can be selected. Forbidden skips are
// still listed but must never become the selection.
func IsAvailable(skip models.Skip) bool {
	return !skip.Forbidden
}

// Available returns the skips that are not forbidden, keeping their order.
func Available(skips []models.Skip) []models.Skip {
	available := make([]models.Skip, 0, len(skips))
	for _, skip := range skips {
		if IsAvailable(skip) {
			available = append(available, skip)
		}
	}
	return available
}
