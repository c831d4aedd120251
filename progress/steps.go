// Package progress derives the status of each step of the checkout journey
// from the current step ordinal.
package progress

import (
	"github.com/pkg/errors"
)

// Ordinals of the checkout steps
const (
	StepPostcode = iota + 1
	StepWasteType
	StepSelectSkip
	StepPermitCheck
	StepChooseDate
	StepPayment
)

// TotalSteps is the length of the journey
const TotalSteps = StepPayment

// ErrStepOutOfRange is returned for a current step outside 1..TotalSteps
var ErrStepOutOfRange = errors.New("progress: step out of range")

// Step is one stage of the journey
type Step struct {
	ID      string `json:"id"`
	Ordinal int    `json:"ordinal"`
	Title   string `json:"title"`
}

var steps = [TotalSteps]Step{
	{ID: "postcode", Ordinal: StepPostcode, Title: "Postcode"},
	{ID: "waste-type", Ordinal: StepWasteType, Title: "Waste Type"},
	{ID: "select-skip", Ordinal: StepSelectSkip, Title: "Select Skip"},
	{ID: "permit-check", Ordinal: StepPermitCheck, Title: "Permit Check"},
	{ID: "choose-date", Ordinal: StepChooseDate, Title: "Choose Date"},
	{ID: "payment", Ordinal: StepPayment, Title: "Payment"},
}

// Steps returns the fixed step sequence in order
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps[:])
	return out
}

// Lookup returns the step with the given ordinal
func Lookup(ordinal int) (Step, bool) {
	if ordinal < 1 || ordinal > TotalSteps {
		return Step{}, false
	}
	return steps[ordinal-1], true
}

// Status of a step relative to the current one
type Status int

const (
	Pending Status = iota
	Current
	Completed
)

func (s Status) String() string {
	switch s {
	case Current:
		return "current"
	case Completed:
		return "completed"
	default:
		return "pending"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "current":
		*s = Current
	case "completed":
		*s = Completed
	default:
		*s = Pending
	}
	return nil
}

// StepStatus is a step with its derived flags
type StepStatus struct {
	Step
	Status    Status `json:"status"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// Summary drives the aggregate progress bar
type Summary struct {
	CompletedCount   int     `json:"completedCount"`
	TotalSteps       int     `json:"totalSteps"`
	ProgressFraction float64 `json:"progressFraction"`
}

// Model is the progress of a journey positioned at one step. It is a value;
// moving to another step means building a new Model.
type Model struct {
	current int
}

// New builds a model for the current step, rejecting ordinals outside 1..6
func New(current int) (Model, error) {
	if current < 1 || current > TotalSteps {
		return Model{}, errors.Wrapf(ErrStepOutOfRange, "step=%d", current)
	}
	return Model{current: current}, nil
}

// Clamp builds a model with current forced into 1..6
func Clamp(current int) Model {
	if current < 1 {
		current = 1
	}
	if current > TotalSteps {
		current = TotalSteps
	}
	return Model{current: current}
}

// Current returns the current step ordinal
func (m Model) Current() int {
	return m.current
}

// CurrentStep returns the current step
func (m Model) CurrentStep() Step {
	step, _ := Lookup(m.current)
	return step
}

// StatusOf derives the status of the step with the given ordinal
func (m Model) StatusOf(ordinal int) Status {
	switch {
	case ordinal < m.current:
		return Completed
	case ordinal == m.current:
		return Current
	default:
		return Pending
	}
}

// Statuses returns every step with its derived flags, in order
func (m Model) Statuses() []StepStatus {
	out := make([]StepStatus, 0, TotalSteps)
	for _, step := range steps {
		status := m.StatusOf(step.Ordinal)
		out = append(out, StepStatus{
			Step:      step,
			Status:    status,
			Completed: status == Completed,
			Current:   status == Current,
		})
	}
	return out
}

// Summary counts the completed steps
func (m Model) Summary() Summary {
	completed := m.current - 1
	if completed < 0 {
		completed = 0
	}
	return Summary{
		CompletedCount:   completed,
		TotalSteps:       TotalSteps,
		ProgressFraction: float64(completed) / float64(TotalSteps),
	}
}
