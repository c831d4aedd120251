package catalog

import (
	"github.com/pkg/errors"

	"skip-checkout/models"
	"skip-checkout/pricing"
)

var (
	// ErrInvalidItem is returned when a skip's price cannot be calculated
	ErrInvalidItem = errors.New("catalog: invalid skip")
	// ErrDuplicateID is returned when two skips share an id
	ErrDuplicateID = errors.New("catalog: duplicate skip id")
)

// Snapshot is an immutable view of the catalog loaded for one session
type Snapshot struct {
	items []models.Skip
	index map[int]int
}

// Empty returns a snapshot with no skips
func Empty() *Snapshot {
	return &Snapshot{index: map[int]int{}}
}

// NewSnapshot validates skips and builds a snapshot preserving their order
func NewSnapshot(skips []models.Skip) (*Snapshot, error) {
	s := &Snapshot{
		items: make([]models.Skip, 0, len(skips)),
		index: make(map[int]int, len(skips)),
	}
	for _, skip := range skips {
		if _, err := pricing.ForSkip(skip); err != nil {
			return nil, errors.Wrapf(ErrInvalidItem, "id=%d price_before_vat=%d vat=%d: %v", skip.ID, skip.PriceBeforeVAT, skip.VAT, err)
		}
		if _, exists := s.index[skip.ID]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "id=%d", skip.ID)
		}
		s.index[skip.ID] = len(s.items)
		s.items = append(s.items, skip)
	}
	return s, nil
}

// Items returns a copy of the skips in catalog order
func (s *Snapshot) Items() []models.Skip {
	out := make([]models.Skip, len(s.items))
	copy(out, s.items)
	return out
}

// Available returns the selectable skips in catalog order
func (s *Snapshot) Available() []models.Skip {
	return Available(s.items)
}

// Len returns the number of skips, forbidden ones included
func (s *Snapshot) Len() int {
	return len(s.items)
}

// Lookup finds a skip by id
func (s *Snapshot) Lookup(id int) (models.Skip, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Skip{}, false
	}
	return s.items[i], true
}

// IsAvailable reports whether id is present and not forbidden
func (s *Snapshot) IsAvailable(id int) bool {
	skip, ok := s.Lookup(id)
	return ok && IsAvailable(skip)
}
