package models

// Skip represents a single skip offering returned by the catalog for a location
type Skip struct {
	ID               int    `json:"id"`
	Size             int    `json:"size"` // Nominal capacity in cubic yards
	HirePeriodDays   int    `json:"hire_period_days"`
	TransportCost    *int64 `json:"transport_cost"`   // Nullable upstream
	PerTonneCost     *int64 `json:"per_tonne_cost"`   // Nullable upstream
	PriceBeforeVAT   int64  `json:"price_before_vat"` // Whole pounds
	VAT              int    `json:"vat"`              // Percentage applied to PriceBeforeVAT
	Postcode         string `json:"postcode"`
	Area             string `json:"area"`
	Forbidden        bool   `json:"forbidden"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	AllowedOnRoad    bool   `json:"allowed_on_road"`
	AllowsHeavyWaste bool   `json:"allows_heavy_waste"`
}

// Location identifies where the skip is going to be placed
type Location struct {
	Postcode string `json:"postcode"`
	Area     string `json:"area"`
}
