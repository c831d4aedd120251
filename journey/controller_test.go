package journey

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skip-checkout/models"
	"skip-checkout/progress"
)

type fakeSelection struct {
	skip *models.Skip
}

func (f *fakeSelection) CurrentSelection() (models.Skip, bool) {
	if f.skip == nil {
		return models.Skip{}, false
	}
	return *f.skip, true
}

func TestNewControllerRejectsOutOfRange(t *testing.T) {
	_, err := NewController(0, &fakeSelection{})
	assert.True(t, errors.Is(err, progress.ErrStepOutOfRange))
}

func TestContinueRequiresSelection(t *testing.T) {
	sel := &fakeSelection{}
	c, err := NewController(progress.StepSelectSkip, sel)
	require.NoError(t, err)

	_, err = c.Continue()
	assert.True(t, errors.Is(err, ErrNoSelection))
	assert.Equal(t, progress.StepSelectSkip, c.Progress().Current())

	sel.skip = &models.Skip{ID: 1, Size: 4}
	model, err := c.Continue()
	require.NoError(t, err)
	assert.Equal(t, progress.StepPermitCheck, model.Current())
	assert.Equal(t, 3, c.Progress().Summary().CompletedCount)
}

func TestContinueBeforeSelectSkipNeedsNoSelection(t *testing.T) {
	c, err := NewController(progress.StepPostcode, &fakeSelection{})
	require.NoError(t, err)

	model, err := c.Continue()
	require.NoError(t, err)
	assert.Equal(t, progress.StepWasteType, model.Current())
}

func TestContinueAtFinalStep(t *testing.T) {
	c, err := NewController(progress.StepPayment, &fakeSelection{})
	require.NoError(t, err)

	_, err = c.Continue()
	assert.True(t, errors.Is(err, ErrFinalStep))
	_, ok := c.NextStep()
	assert.False(t, ok)
}

func TestBack(t *testing.T) {
	c, err := NewController(progress.StepWasteType, &fakeSelection{})
	require.NoError(t, err)

	model, err := c.Back()
	require.NoError(t, err)
	assert.Equal(t, progress.StepPostcode, model.Current())

	_, err = c.Back()
	assert.True(t, errors.Is(err, ErrFirstStep))
}

func TestNextStep(t *testing.T) {
	c, err := NewController(progress.StepSelectSkip, &fakeSelection{})
	require.NoError(t, err)

	next, ok := c.NextStep()
	require.True(t, ok)
	assert.Equal(t, "Permit Check", next.Title)
}
