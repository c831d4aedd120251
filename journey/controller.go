// Package journey moves a checkout between steps.
package journey

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"skip-checkout/metrics"
	"skip-checkout/models"
	"skip-checkout/progress"
)

var (
	// ErrNoSelection is returned when continuing past Select Skip without a skip
	ErrNoSelection = errors.New("journey: no skip selected")
	// ErrFinalStep is returned when continuing from the last step
	ErrFinalStep = errors.New("journey: already at the final step")
	// ErrFirstStep is returned when going back from the first step
	ErrFirstStep = errors.New("journey: already at the first step")
)

// SelectionReader is the part of the selection state the controller needs
type SelectionReader interface {
	CurrentSelection() (models.Skip, bool)
}

// Controller owns the current step of one checkout
type Controller struct {
	model     progress.Model
	selection SelectionReader
}

// NewController starts a journey at step
func NewController(step int, selection SelectionReader) (*Controller, error) {
	model, err := progress.New(step)
	if err != nil {
		return nil, err
	}
	return &Controller{model: model, selection: selection}, nil
}

// Progress returns the model for the current step
func (c *Controller) Progress() progress.Model {
	return c.model
}

// NextStep returns the step a continue would move to
func (c *Controller) NextStep() (progress.Step, bool) {
	return progress.Lookup(c.model.Current() + 1)
}

// Continue advances one step. Leaving Select Skip requires a selection.
func (c *Controller) Continue() (progress.Model, error) {
	current := c.model.Current()
	if current == progress.TotalSteps {
		return c.model, ErrFinalStep
	}
	if current == progress.StepSelectSkip {
		skip, ok := c.selection.CurrentSelection()
		if !ok {
			return c.model, ErrNoSelection
		}
		log.Info().Int("skip_id", skip.ID).Int("size", skip.Size).Msg("continuing with selected skip")
	}
	return c.moveTo(current + 1)
}

// Back moves to the previous step. Later steps are not un-completed here
// beyond what the new ordinal derives.
func (c *Controller) Back() (progress.Model, error) {
	current := c.model.Current()
	if current == progress.StepPostcode {
		return c.model, ErrFirstStep
	}
	return c.moveTo(current - 1)
}

func (c *Controller) moveTo(step int) (progress.Model, error) {
	model, err := progress.New(step)
	if err != nil {
		return c.model, err
	}
	from := c.model.CurrentStep().ID
	c.model = model
	metrics.Incr("journey.move", []string{"from:" + from, "to:" + model.CurrentStep().ID})
	return model, nil
}
