package roster

import (
	"strings"
	"sync"

	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/pkg/errors"
)

// Roster holds one operator's contact collection plus the filtered view
// derived from it. The collection is the single source of truth: the view is
// recomputed wholesale from it whenever a predicate or the collection itself
// changes, and both share the same *model.Contact values, so a flag flipped
// through either is visible through both.
type Roster struct {
	mu          sync.RWMutex
	contacts    []*model.Contact
	filtered    []*model.Contact
	searchTerm  string
	activeShift string
}

func New() *Roster {
	return &Roster{}
}

// filterContacts derives the view: a case-insensitive substring match across
// the five searchable fields, then an exact shift match if one is active.
// Relative collection order is preserved.
func filterContacts(contacts []*model.Contact, term, shift string) []*model.Contact {
	filtered := make([]*model.Contact, 0, len(contacts))
	needle := strings.ToLower(term)
	for _, c := range contacts {
		if needle != "" && !matchesSearch(c, needle) {
			continue
		}
		if shift != "" && c.ShiftPreference != shift {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func matchesSearch(c *model.Contact, needle string) bool {
	for _, field := range []string{c.FullName, c.Email, c.PhoneDisplay, c.Neighborhood, c.ShiftPreference} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Load replaces the collection. Every contact is stamped unselected and
// unsent, predicates reset, and the view becomes the full collection.
func (r *Roster) Load(contacts []*model.Contact) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range contacts {
		c.Selected = false
		c.MessageSent = false
	}
	r.contacts = contacts
	r.searchTerm = ""
	r.activeShift = ""
	r.filtered = filterContacts(r.contacts, "", "")
}

func (r *Roster) SetSearchTerm(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.searchTerm = term
	r.filtered = filterContacts(r.contacts, r.searchTerm, r.activeShift)
}

// SetActiveFilter toggles the shift filter: selecting the already-active
// shift clears it.
func (r *Roster) SetActiveFilter(shift string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shift == r.activeShift {
		r.activeShift = ""
	} else {
		r.activeShift = shift
	}
	r.filtered = filterContacts(r.contacts, r.searchTerm, r.activeShift)
}

// ShowAll clears the shift filter only; the search term is retained.
func (r *Roster) ShowAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeShift = ""
	r.filtered = filterContacts(r.contacts, r.searchTerm, "")
}

// ToggleSelectAll flips selection on every contact currently in the filtered
// view. Contacts outside the view keep their selection.
func (r *Roster) ToggleSelectAll(selected bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inView := make(map[string]struct{}, len(r.filtered))
	for _, c := range r.filtered {
		inView[c.PhoneNormalized] = struct{}{}
	}
	for _, c := range r.contacts {
		if _, ok := inView[c.PhoneNormalized]; ok {
			c.Selected = selected
		}
	}
}

// ToggleSelect flips selection on the contact with the given phone key.
// Contacts are addressed by key end-to-end; only the console's table keeps a
// positional index, and it resolves that to a key before calling here. The
// contact must be present in the current filtered view.
func (r *Roster) ToggleSelect(phoneKey string, selected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found bool
	for _, c := range r.filtered {
		if c.PhoneNormalized == phoneKey {
			found = true
			break
		}
	}
	if !found {
		return errors.NewNotFound("contact", nil)
	}

	// Flag every record sharing the key so duplicates stay in lockstep.
	for _, c := range r.contacts {
		if c.PhoneNormalized == phoneKey {
			c.Selected = selected
		}
	}
	return nil
}

// Clear empties the collection, the view, and both predicates.
func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contacts = nil
	r.filtered = nil
	r.searchTerm = ""
	r.activeShift = ""
}

// SelectedContacts returns every selected contact in collection order.
func (r *Roster) SelectedContacts() []*model.Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var selected []*model.Contact
	for _, c := range r.contacts {
		if c.Selected {
			selected = append(selected, c)
		}
	}
	return selected
}

// MarkSent flags MessageSent on every contact whose phone key is in keys.
// It never unsets a previously sent flag.
func (r *Roster) MarkSent(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sent := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		sent[k] = struct{}{}
	}
	for _, c := range r.contacts {
		if _, ok := sent[c.PhoneNormalized]; ok {
			c.MessageSent = true
		}
	}
}

// View returns a snapshot of the filtered view and the active predicates.
func (r *Roster) View() *model.RosterView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, len(r.filtered))
	copy(contacts, r.filtered)
	return &model.RosterView{
		Contacts:    contacts,
		SearchTerm:  r.searchTerm,
		ActiveShift: r.activeShift,
		Total:       len(r.contacts),
	}
}

// Contacts returns a snapshot of the full collection in insertion order.
func (r *Roster) Contacts() []*model.Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, len(r.contacts))
	copy(contacts, r.contacts)
	return contacts
}
