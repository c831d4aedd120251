// Package session holds the state of one active checkout.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"skip-checkout/catalog"
	"skip-checkout/journey"
	"skip-checkout/metrics"
	"skip-checkout/models"
	"skip-checkout/progress"
	"skip-checkout/selection"
)

// Session is one mounted checkout. The catalog is loaded exactly once, when
// the session is mounted. Operations on a session are serialized.
type Session struct {
	ID        string
	Location  models.Location
	CreatedAt time.Time

	mu         sync.Mutex
	status     catalog.LoadStatus
	selection  *selection.State
	journey    *journey.Controller
	summary    Summary
	summaryErr error
}

// Mount creates a session at step and performs its single catalog load
func Mount(ctx context.Context, id string, loader catalog.Loader, loc models.Location, step int) (*Session, error) {
	s := &Session{
		ID:        id,
		Location:  loc,
		CreatedAt: time.Now(),
		status:    catalog.StatusNotLoaded,
		selection: selection.New(catalog.Empty()),
	}

	jc, err := journey.NewController(step, s.selection)
	if err != nil {
		return nil, err
	}
	s.journey = jc

	// Keep the summary current: it is rebuilt whenever the selection changes
	s.selection.Subscribe(func(st *selection.State) {
		s.summary, s.summaryErr = BuildSummary(st)
	})

	start := time.Now()
	snap, status := catalog.LoadOrEmpty(ctx, loader, loc)
	metrics.BenchmarkMethod(start, "catalog.load", []string{"status:" + status.String()})

	s.status = status
	s.selection.Reload(snap)
	return s, nil
}

// Status returns the catalog load status
func (s *Session) Status() catalog.LoadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Select handles a selectItem event. Unavailable ids are ignored.
func (s *Session) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.selection.Select(id)
	if changed {
		log.Info().Str("session", s.ID).Int("skip_id", id).Msg("skip selected")
		metrics.Incr("selection.select", nil)
	}
	return changed
}

// Clear removes the selection
func (s *Session) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clear()
}

// IsSelected reports whether id is the selected skip
func (s *Session) IsSelected(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsSelected(id)
}

// CurrentSelection resolves the selected skip
func (s *Session) CurrentSelection() (models.Skip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.CurrentSelection()
}

// Summary returns the selection panel
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary, s.summaryErr
}

// Continue handles a requestContinue event
func (s *Session) Continue() (progress.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.journey.Continue()
	if err != nil {
		return model, err
	}
	metrics.Incr("journey.continue", []string{"step:" + model.CurrentStep().ID})
	return model, nil
}

// Back moves the journey back one step
func (s *Session) Back() (progress.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journey.Back()
}

// Progress returns the current progress model
func (s *Session) Progress() progress.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journey.Progress()
}

// View builds the full presentation state
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalogView, err := BuildCatalogView(s.selection, s.status)
	if err != nil {
		return View{}, err
	}
	if s.summaryErr != nil {
		return View{}, s.summaryErr
	}

	model := s.journey.Progress()
	return View{
		ID:          s.ID,
		Location:    s.Location,
		CurrentStep: model.Current(),
		Steps:       model.Statuses(),
		Progress:    model.Summary(),
		Catalog:     catalogView,
		Summary:     s.summary,
	}, nil
}
