// Package selection holds the single skip a customer has chosen.
package selection

import (
	"github.com/rs/zerolog/log"

	"skip-checkout/catalog"
	"skip-checkout/models"
)

// Listener is called after the selection changes
type Listener func(s *State)

// State holds at most one selected skip id, resolved against the current
// catalog snapshot. It is not safe for concurrent use; callers serialize
// access (see session.Session).
type State struct {
	catalog    *catalog.Snapshot
	selectedID int
	selected   bool
	listeners  []Listener
}

// New creates an empty selection over a catalog snapshot
func New(snap *catalog.Snapshot) *State {
	if snap == nil {
		snap = catalog.Empty()
	}
	return &State{catalog: snap}
}

// Subscribe registers a listener for selection changes
func (s *State) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Select makes id the selection if the skip is available in the snapshot.
// Forbidden or unknown ids are ignored. Returns true when the selection changed.
func (s *State) Select(id int) bool {
	if !s.catalog.IsAvailable(id) {
		log.Debug().Int("skip_id", id).Msg("ignoring selection of unavailable skip")
		return false
	}
	if s.selected && s.selectedID == id {
		return false
	}
	s.selectedID = id
	s.selected = true
	s.notify()
	return true
}

// Clear removes the selection. Returns true when there was one.
func (s *State) Clear() bool {
	if !s.selected {
		return false
	}
	s.selectedID = 0
	s.selected = false
	s.notify()
	return true
}

// IsSelected reports whether id is the selected skip
func (s *State) IsSelected(id int) bool {
	return s.selected && s.selectedID == id
}

// SelectedID returns the selected id, if any
func (s *State) SelectedID() (int, bool) {
	return s.selectedID, s.selected
}

// CurrentSelection resolves the selected id against the snapshot. It is empty
// when nothing is selected or the id is no longer in the catalog.
func (s *State) CurrentSelection() (models.Skip, bool) {
	if !s.selected {
		return models.Skip{}, false
	}
	return s.catalog.Lookup(s.selectedID)
}

// Catalog returns the snapshot selections are checked against
func (s *State) Catalog() *catalog.Snapshot {
	return s.catalog
}

// Reload swaps the snapshot. A selection that is now forbidden is cleared; one
// that disappeared is kept and resolves to nothing until it comes back.
func (s *State) Reload(snap *catalog.Snapshot) {
	if snap == nil {
		snap = catalog.Empty()
	}
	s.catalog = snap
	if s.selected {
		if skip, ok := snap.Lookup(s.selectedID); ok && !catalog.IsAvailable(skip) {
			s.selectedID = 0
			s.selected = false
		}
	}
	s.notify()
}

func (s *State) notify() {
	for _, l := range s.listeners {
		l(s)
	}
}
