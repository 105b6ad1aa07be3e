package cart

import "github.com/fekuna/omnipos-storefront-service/internal/model"

// SelectionState is the aggregate shown by the "select all" checkbox.
type SelectionState string

const (
	SelectionChecked       SelectionState = "checked"
	SelectionUnchecked     SelectionState = "unchecked"
	SelectionIndeterminate SelectionState = "indeterminate"
)

// Selection is the set of cart line ids marked for the next checkout. It is
// rebuilt for every cart view and never persisted.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection starts with every given id selected.
func NewSelection(ids []string) *Selection {
	s := &Selection{}
	s.SelectAll(ids)
	return s
}

func (s *Selection) Toggle(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll replaces the selection with ids.
func (s *Selection) SelectAll(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// SelectedItems keeps the selected lines in cart order. Selected ids that are
// not in items are ignored.
func (s *Selection) SelectedItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if s.IsSelected(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// State reports checked when every line is selected, unchecked when none is
// (an empty cart included) and indeterminate otherwise.
func (s *Selection) State(items []model.CartItem) SelectionState {
	selected := len(s.SelectedItems(items))
	switch {
	case selected == 0:
		return SelectionUnchecked
	case selected == len(items):
		return SelectionChecked
	default:
		return SelectionIndeterminate
	}
}

// Checkout returns exactly the selected lines, refusing an empty selection.
func (s *Selection) Checkout(items []model.CartItem) ([]model.CartItem, error) {
	selected := s.SelectedItems(items)
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	return selected, nil
}
