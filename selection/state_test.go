package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skip-checkout/catalog"
	"skip-checkout/models"
)

func snapshot(t *testing.T, skips ...models.Skip) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(skips)
	require.NoError(t, err)
	return snap
}

func scenarioSnapshot(t *testing.T) *catalog.Snapshot {
	return snapshot(t,
		models.Skip{ID: 1, Size: 4, PriceBeforeVAT: 200, VAT: 20},
		models.Skip{ID: 2, Size: 6, PriceBeforeVAT: 150, VAT: 20, Forbidden: true},
	)
}

func TestStartsEmpty(t *testing.T) {
	s := New(scenarioSnapshot(t))
	_, ok := s.SelectedID()
	assert.False(t, ok)
	_, ok = s.CurrentSelection()
	assert.False(t, ok)
}

func TestSelectAvailable(t *testing.T) {
	s := New(scenarioSnapshot(t))

	assert.True(t, s.Select(1))
	assert.True(t, s.IsSelected(1))
	skip, ok := s.CurrentSelection()
	require.True(t, ok)
	assert.Equal(t, 1, skip.ID)
}

func TestSelectForbiddenIsIgnored(t *testing.T) {
	s := New(scenarioSnapshot(t))

	assert.False(t, s.Select(2))
	_, ok := s.SelectedID()
	assert.False(t, ok)

	s.Select(1)
	assert.False(t, s.Select(2))
	id, _ := s.SelectedID()
	assert.Equal(t, 1, id)
	assert.False(t, s.IsSelected(2))
}

func TestSelectUnknownIsIgnored(t *testing.T) {
	s := New(scenarioSnapshot(t))
	assert.False(t, s.Select(42))
	_, ok := s.SelectedID()
	assert.False(t, ok)
}

func TestLastSelectionWins(t *testing.T) {
	s := New(snapshot(t, models.Skip{ID: 1}, models.Skip{ID: 3}))
	s.Select(1)
	s.Select(3)
	assert.False(t, s.IsSelected(1))
	assert.True(t, s.IsSelected(3))
}

func TestIdempotence(t *testing.T) {
	s := New(scenarioSnapshot(t))
	changes := 0
	s.Subscribe(func(*State) { changes++ })

	assert.True(t, s.Select(1))
	assert.False(t, s.Select(1))
	id, ok := s.SelectedID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, changes)

	assert.True(t, s.Clear())
	assert.False(t, s.Clear())
	_, ok = s.SelectedID()
	assert.False(t, ok)
	assert.Equal(t, 2, changes)
}

func TestListenersSeeNewState(t *testing.T) {
	s := New(scenarioSnapshot(t))
	var seen []bool
	s.Subscribe(func(st *State) {
		_, ok := st.CurrentSelection()
		seen = append(seen, ok)
	})

	s.Select(2)
	s.Select(1)
	s.Clear()
	assert.Equal(t, []bool{true, false}, seen)
}

func TestReloadDropsMissingResolution(t *testing.T) {
	s := New(scenarioSnapshot(t))
	s.Select(1)

	s.Reload(snapshot(t, models.Skip{ID: 7}))
	_, ok := s.CurrentSelection()
	assert.False(t, ok)
	id, selected := s.SelectedID()
	assert.True(t, selected)
	assert.Equal(t, 1, id)

	s.Reload(scenarioSnapshot(t))
	skip, ok := s.CurrentSelection()
	require.True(t, ok)
	assert.Equal(t, 1, skip.ID)
}

func TestReloadClearsSelectionThatBecameForbidden(t *testing.T) {
	s := New(scenarioSnapshot(t))
	s.Select(1)

	s.Reload(snapshot(t, models.Skip{ID: 1, Forbidden: true}))
	_, ok := s.SelectedID()
	assert.False(t, ok)
}

func TestNilSnapshot(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Select(1))
	assert.Equal(t, 0, s.Catalog().Len())
}
