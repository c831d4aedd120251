package session

import (
	"skip-checkout/catalog"
	"skip-checkout/models"
	"skip-checkout/pricing"
	"skip-checkout/progress"
	"skip-checkout/selection"
)

// Card badges
const (
	BadgePrivateProperty = "Private Property Only"
	BadgeRoadPlacement   = "Road placement allowed"
	BadgeHeavyWaste      = "Heavy waste accepted"
	BadgeNotAvailable    = "Not Available"
)

// ItemView is what the presentation layer receives per skip
type ItemView struct {
	Item         models.Skip          `json:"item"`
	DisplayPrice pricing.DisplayPrice `json:"displayPrice"`
	IsAvailable  bool                 `json:"isAvailable"`
	IsSelected   bool                 `json:"isSelected"`
	Badges       []string             `json:"badges"`
}

// CatalogView is the skip list of the selection step
type CatalogView struct {
	Status         catalog.LoadStatus `json:"status"`
	Postcode       string             `json:"postcode"`
	AvailableCount int                `json:"availableCount"`
	Items          []ItemView         `json:"items"`
}

// Summary is the selection panel shown once a skip is chosen
type Summary struct {
	Selected       bool                 `json:"selected"`
	SkipID         int                  `json:"skipId,omitempty"`
	Size           int                  `json:"size,omitempty"`
	HirePeriodDays int                  `json:"hirePeriodDays,omitempty"`
	DisplayPrice   pricing.DisplayPrice `json:"displayPrice"`
	ContinueLabel  string               `json:"continueLabel,omitempty"`
}

// View is the full state of a session handed to the presentation layer
type View struct {
	ID          string                `json:"id"`
	Location    models.Location       `json:"location"`
	CurrentStep int                   `json:"currentStep"`
	Steps       []progress.StepStatus `json:"steps"`
	Progress    progress.Summary      `json:"progress"`
	Catalog     CatalogView           `json:"catalog"`
	Summary     Summary               `json:"summary"`
}

// Badges lists the informational flags shown on a skip card
func Badges(skip models.Skip) []string {
	badges := make([]string, 0, 3)
	if skip.Forbidden {
		badges = append(badges, BadgeNotAvailable)
	}
	if skip.AllowedOnRoad {
		badges = append(badges, BadgeRoadPlacement)
	} else {
		badges = append(badges, BadgePrivateProperty)
	}
	if skip.AllowsHeavyWaste {
		badges = append(badges, BadgeHeavyWaste)
	}
	return badges
}

// BuildCatalogView derives the per-skip view. Forbidden skips stay in the
// list, marked unavailable.
func BuildCatalogView(sel *selection.State, status catalog.LoadStatus) (CatalogView, error) {
	snap := sel.Catalog()
	items := snap.Items()

	view := CatalogView{
		Status:         status,
		AvailableCount: len(snap.Available()),
		Items:          make([]ItemView, 0, len(items)),
	}
	if len(items) > 0 {
		view.Postcode = items[0].Postcode
	}

	for _, skip := range items {
		price, err := pricing.ForSkip(skip)
		if err != nil {
			return CatalogView{}, err
		}
		view.Items = append(view.Items, ItemView{
			Item:         skip,
			DisplayPrice: price,
			IsAvailable:  catalog.IsAvailable(skip),
			IsSelected:   sel.IsSelected(skip.ID),
			Badges:       Badges(skip),
		})
	}
	return view, nil
}

// BuildSummary derives the selection panel. With nothing selected the
// summary is empty with a zero total.
func BuildSummary(sel *selection.State) (Summary, error) {
	skip, ok := sel.CurrentSelection()
	if !ok {
		return Summary{}, nil
	}
	price, err := pricing.ForSkip(skip)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		Selected:       true,
		SkipID:         skip.ID,
		Size:           skip.Size,
		HirePeriodDays: skip.HirePeriodDays,
		DisplayPrice:   price,
	}
	if next, ok := progress.Lookup(progress.StepSelectSkip + 1); ok {
		summary.ContinueLabel = "Continue to " + next.Title
	}
	return summary, nil
}
