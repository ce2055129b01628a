package roster

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/pkg/errors"
)

func sampleContacts() []*model.Contact {
	return []*model.Contact{
		{FullName: "Ana Souza", Neighborhood: "Centro", PhoneDisplay: "(11) 99999-0001", PhoneNormalized: "5511999990001", Email: "ana@example.com", ShiftPreference: "Morning"},
		{FullName: "Bruno Lima", Neighborhood: "Jardins", PhoneDisplay: "(11) 99999-0002", PhoneNormalized: "5511999990002", Email: "bruno@example.com", ShiftPreference: "Evening"},
		{FullName: "Clara Dias", Neighborhood: "Centro", PhoneDisplay: "(11) 99999-0003", PhoneNormalized: "5511999990003", Email: "clara@example.com", ShiftPreference: "Morning"},
		{FullName: "Davi Rocha", Neighborhood: "Mooca", PhoneDisplay: "(11) 99999-0004", PhoneNormalized: "5511999990004", Email: "davi@example.com", ShiftPreference: "Night"},
	}
}

func loadedRoster() *Roster {
	r := New()
	r.Load(sampleContacts())
	return r
}

func viewKeys(r *Roster) []string {
	view := r.View()
	keys := make([]string, 0, len(view.Contacts))
	for _, c := range view.Contacts {
		keys = append(keys, c.PhoneNormalized)
	}
	return keys
}

func TestLoadResetsFlagsAndPredicates(t *testing.T) {
	r := New()
	r.Load(sampleContacts())
	r.SetSearchTerm("ana")
	r.SetActiveFilter("Morning")
	require.NoError(t, r.ToggleSelect("5511999990001", true))

	replacement := sampleContacts()
	replacement[0].Selected = true
	replacement[0].MessageSent = true
	r.Load(replacement)

	view := r.View()
	assert.Len(t, view.Contacts, 4)
	assert.Empty(t, view.SearchTerm)
	assert.Empty(t, view.ActiveShift)
	for _, c := range view.Contacts {
		assert.False(t, c.Selected)
		assert.False(t, c.MessageSent)
	}
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"by name", "ANA", []string{"5511999990001"}},
		{"by neighborhood", "centro", []string{"5511999990001", "5511999990003"}},
		{"by display phone", "0002", []string{"5511999990002"}},
		{"by email", "davi@", []string{"5511999990004"}},
		{"by shift", "evening", []string{"5511999990002"}},
		{"no match", "zzz", []string{}},
		{"empty shows all", "", []string{"5511999990001", "5511999990002", "5511999990003", "5511999990004"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := loadedRoster()
			r.SetSearchTerm(tt.term)
			assert.Equal(t, tt.want, viewKeys(r))
		})
	}
}

func TestSearchPreservesCollectionOrder(t *testing.T) {
	r := loadedRoster()
	r.SetSearchTerm("example.com")
	assert.Equal(t, []string{"5511999990001", "5511999990002", "5511999990003", "5511999990004"}, viewKeys(r))
}

func TestShiftFilterToggles(t *testing.T) {
	r := loadedRoster()

	r.SetActiveFilter("Morning")
	view := r.View()
	assert.Equal(t, "Morning", view.ActiveShift)
	assert.Len(t, view.Contacts, 2)

	// Re-applying the active shift clears it.
	r.SetActiveFilter("Morning")
	view = r.View()
	assert.Empty(t, view.ActiveShift)
	assert.Len(t, view.Contacts, 4)

	// Switching shifts replaces the filter.
	r.SetActiveFilter("Morning")
	r.SetActiveFilter("Night")
	view = r.View()
	assert.Equal(t, "Night", view.ActiveShift)
	assert.Equal(t, []string{"5511999990004"}, viewKeys(r))
}

func TestSearchAndShiftCompose(t *testing.T) {
	r := loadedRoster()
	r.SetSearchTerm("centro")
	r.SetActiveFilter("Morning")
	assert.Equal(t, []string{"5511999990001", "5511999990003"}, viewKeys(r))

	r.SetSearchTerm("clara")
	assert.Equal(t, []string{"5511999990003"}, viewKeys(r))
}

func TestShowAllKeepsSearchTerm(t *testing.T) {
	r := loadedRoster()
	r.SetSearchTerm("centro")
	r.SetActiveFilter("Morning")

	r.ShowAll()
	view := r.View()
	assert.Empty(t, view.ActiveShift)
	assert.Equal(t, "centro", view.SearchTerm)
	assert.Len(t, view.Contacts, 2)
}

func TestToggleSelect(t *testing.T) {
	r := loadedRoster()

	require.NoError(t, r.ToggleSelect("5511999990002", true))
	selected := r.SelectedContacts()
	require.Len(t, selected, 1)
	assert.Equal(t, "Bruno Lima", selected[0].FullName)

	require.NoError(t, r.ToggleSelect("5511999990002", false))
	assert.Empty(t, r.SelectedContacts())
}

func TestToggleSelectOutsideViewFails(t *testing.T) {
	r := loadedRoster()
	r.SetActiveFilter("Morning")

	// Davi is filtered out of the view and cannot be addressed.
	err := r.ToggleSelect("5511999990004", true)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
	assert.Empty(t, r.SelectedContacts())

	err = r.ToggleSelect("0000000000000", true)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestToggleSelectFlagsDuplicateKeys(t *testing.T) {
	contacts := sampleContacts()
	dup := *contacts[0]
	contacts = append(contacts, &dup)
	r := New()
	r.Load(contacts)

	require.NoError(t, r.ToggleSelect("5511999990001", true))
	selected := r.SelectedContacts()
	assert.Len(t, selected, 2)
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	r := loadedRoster()
	require.NoError(t, r.ToggleSelect("5511999990004", true))

	// Filtering Davi out of the view does not clear his flag.
	r.SetActiveFilter("Morning")
	selected := r.SelectedContacts()
	require.Len(t, selected, 1)
	assert.Equal(t, "Davi Rocha", selected[0].FullName)

	// The flag is visible again once he re-enters the view.
	r.ShowAll()
	for _, c := range r.View().Contacts {
		if c.PhoneNormalized == "5511999990004" {
			assert.True(t, c.Selected)
		}
	}
}

func TestToggleSelectAllScopedToView(t *testing.T) {
	r := loadedRoster()
	require.NoError(t, r.ToggleSelect("5511999990004", true))

	r.SetActiveFilter("Morning")
	r.ToggleSelectAll(true)

	// The two Morning contacts flip; Davi's prior selection is untouched.
	keys := make(map[string]bool)
	for _, c := range r.Contacts() {
		keys[c.PhoneNormalized] = c.Selected
	}
	assert.True(t, keys["5511999990001"])
	assert.False(t, keys["5511999990002"])
	assert.True(t, keys["5511999990003"])
	assert.True(t, keys["5511999990004"])

	r.ToggleSelectAll(false)
	assert.False(t, r.Contacts()[0].Selected)
	// Still selected: outside the Morning view.
	assert.True(t, r.Contacts()[3].Selected)
}

func TestSelectedContactsCollectionOrder(t *testing.T) {
	r := loadedRoster()
	require.NoError(t, r.ToggleSelect("5511999990003", true))
	require.NoError(t, r.ToggleSelect("5511999990001", true))

	selected := r.SelectedContacts()
	require.Len(t, selected, 2)
	assert.Equal(t, "Ana Souza", selected[0].FullName)
	assert.Equal(t, "Clara Dias", selected[1].FullName)
}

func TestMarkSent(t *testing.T) {
	r := loadedRoster()
	r.MarkSent([]string{"5511999990001", "5511999990003"})

	contacts := r.Contacts()
	assert.True(t, contacts[0].MessageSent)
	assert.False(t, contacts[1].MessageSent)
	assert.True(t, contacts[2].MessageSent)

	// A later batch never unsets earlier flags.
	r.MarkSent([]string{"5511999990002"})
	contacts = r.Contacts()
	assert.True(t, contacts[0].MessageSent)
	assert.True(t, contacts[1].MessageSent)
}

func TestClear(t *testing.T) {
	r := loadedRoster()
	r.SetSearchTerm("centro")
	r.SetActiveFilter("Morning")

	r.Clear()
	view := r.View()
	assert.Empty(t, view.Contacts)
	assert.Empty(t, view.SearchTerm)
	assert.Empty(t, view.ActiveShift)
	assert.Zero(t, view.Total)
	assert.Empty(t, r.SelectedContacts())
}

func TestViewTotalCountsCollection(t *testing.T) {
	r := loadedRoster()
	r.SetActiveFilter("Night")

	view := r.View()
	assert.Len(t, view.Contacts, 1)
	assert.Equal(t, 4, view.Total)
}

func TestManagerPerOperatorIsolation(t *testing.T) {
	m := NewManager()
	alice, bob := uuid.New(), uuid.New()

	m.Get(alice).Load(sampleContacts())
	assert.Len(t, m.Get(alice).Contacts(), 4)
	assert.Empty(t, m.Get(bob).Contacts())

	// Same roster instance on every lookup.
	assert.Same(t, m.Get(alice), m.Get(alice))
}

func TestManagerMarkSent(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	m.Get(userID).Load(sampleContacts())

	m.MarkSent(userID, []string{"5511999990002"})
	assert.True(t, m.Get(userID).Contacts()[1].MessageSent)
}
