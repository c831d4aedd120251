package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"skip-checkout/journey"
	"skip-checkout/models"
	"skip-checkout/service"
	"skip-checkout/session"
)

// QuoteRenderer renders quotes for a session
type QuoteRenderer interface {
	RenderQuoteHTML(data service.QuoteData) (string, error)
	GeneratePDF(ctx context.Context, sessionID string) ([]byte, error)
}

// CheckoutController handles HTTP requests for checkout sessions
type CheckoutController struct {
	store           session.StoreInterface
	quotes          QuoteRenderer
	defaultLocation models.Location
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(store session.StoreInterface, quotes QuoteRenderer, defaultLocation models.Location) *CheckoutController {
	return &CheckoutController{
		store:           store,
		quotes:          quotes,
		defaultLocation: defaultLocation,
	}
}

// CreateSession handles POST /checkout/sessions
// Mounts a session for the location and loads its catalog once
func (c *CheckoutController) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		log.Warn().Err(err).Msg("❌ CreateSession: failed to decode request body")
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	loc := models.Location{
		Postcode: strings.ToUpper(strings.TrimSpace(req.Postcode)),
		Area:     strings.TrimSpace(req.Area),
	}
	if loc.Postcode == "" {
		loc = c.defaultLocation
	}
	if loc.Postcode == "" {
		writeError(w, http.StatusBadRequest, "postcode is required")
		return
	}

	s, err := c.store.Create(r.Context(), loc)
	if err != nil {
		log.Error().Err(err).Msg("❌ CreateSession: failed to mount session")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create session: %v", err))
		return
	}

	log.Info().Str("session", s.ID).Str("postcode", loc.Postcode).Str("area", loc.Area).Msg("✅ CreateSession: session mounted")
	c.writeView(w, http.StatusCreated, s)
}

// GetSession handles GET /checkout/sessions/:id
func (c *CheckoutController) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}
	c.writeView(w, http.StatusOK, s)
}

// DeleteSession handles DELETE /checkout/sessions/:id
func (c *CheckoutController) DeleteSession(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := c.lookup(w, id); !ok {
		return
	}
	c.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// SelectSkip handles POST /checkout/sessions/:id/select
// Selecting a forbidden or unknown skip is ignored; the view is returned either way
func (c *CheckoutController) SelectSkip(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}

	var req models.SelectSkipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.SkipID == nil {
		writeError(w, http.StatusBadRequest, "skipId is required")
		return
	}

	s.Select(*req.SkipID)
	c.writeView(w, http.StatusOK, s)
}

// ClearSelection handles POST /checkout/sessions/:id/clear
func (c *CheckoutController) ClearSelection(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}
	s.Clear()
	c.writeView(w, http.StatusOK, s)
}

// Continue handles POST /checkout/sessions/:id/continue
func (c *CheckoutController) Continue(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}

	if _, err := s.Continue(); err != nil {
		if errors.Is(err, journey.ErrNoSelection) || errors.Is(err, journey.ErrFinalStep) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.writeView(w, http.StatusOK, s)
}

// Back handles POST /checkout/sessions/:id/back
func (c *CheckoutController) Back(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}

	if _, err := s.Back(); err != nil {
		if errors.Is(err, journey.ErrFirstStep) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.writeView(w, http.StatusOK, s)
}

// Quote handles GET /checkout/sessions/:id/quote?format=html|pdf
func (c *CheckoutController) Quote(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := c.lookup(w, id)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "Invalid format. Valid formats: html, pdf")
		return
	}

	skip, ok := s.CurrentSelection()
	if !ok {
		writeError(w, http.StatusConflict, "no skip selected")
		return
	}

	if format == "pdf" {
		pdf, err := c.quotes.GeneratePDF(r.Context(), s.ID)
		if err != nil {
			log.Error().Err(err).Str("session", s.ID).Msg("❌ Quote: failed to generate PDF")
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate quote: %v", err))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="skip-quote-%d-yard.pdf"`, skip.Size))
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
		return
	}

	data, err := service.BuildQuoteData(s.ID, skip, s.Progress())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	html, err := c.quotes.RenderQuoteHTML(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render quote: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func (c *CheckoutController) lookup(w http.ResponseWriter, id string) (*session.Session, bool) {
	s, err := c.store.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return s, true
}

func (c *CheckoutController) writeView(w http.ResponseWriter, status int, s *session.Session) {
	view, err := s.View()
	if err != nil {
		log.Error().Err(err).Str("session", s.ID).Msg("❌ failed to build session view")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, status, view)
}
