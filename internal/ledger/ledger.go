// Package ledger holds the friends list and the transitions that change it.
package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection is returned when a split is applied with no friend selected.
	ErrNoSelection = errors.New("no friend selected")

	// ErrInvalidFriend is returned when a friend is missing a name or image.
	ErrInvalidFriend = errors.New("friend needs a name and an image")

	// ErrDuplicateID is returned when a friend's id is already taken.
	ErrDuplicateID = errors.New("friend id already exists")
)

// Friend is one person the user splits bills with.
// A negative balance means the user owes the friend, positive means the
// friend owes the user.
type Friend struct {
	ID      string
	Name    string
	Image   string
	Balance float64
}

// State is the complete application state.
type State struct {
	Friends   []Friend
	Selection Selection
	PanelOpen bool
}

// New returns a state seeded with friends, in order. Friends that AddFriend
// would reject are skipped and reported in the returned error.
func New(friends []Friend) (State, error) {
	var (
		s    State
		errs []error
	)
	for _, f := range friends {
		next, err := s.AddFriend(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed friend %q: %w", f.Name, err))
			continue
		}
		s = next
	}
	return s, errors.Join(errs...)
}

// Action is an intent produced by the UI. Only Apply interprets it.
type Action interface {
	action()
}

// TogglePanel flips the add-friend panel.
type TogglePanel struct{}

// AddFriend appends a friend and closes the add-friend panel.
type AddFriend struct {
	Friend Friend
}

// SelectFriend toggles the selection and closes the add-friend panel.
type SelectFriend struct {
	ID string
}

// ApplySplit adds Delta to the selected friend's balance.
type ApplySplit struct {
	Delta float64
}

func (TogglePanel) action()  {}
func (AddFriend) action()    {}
func (SelectFriend) action() {}
func (ApplySplit) action()   {}

// Apply returns the state that follows s after a. On error s is returned
// unchanged. s itself is never modified.
func Apply(s State, a Action) (State, error) {
	switch a := a.(type) {
	case TogglePanel:
		s.PanelOpen = !s.PanelOpen
		return s, nil

	case AddFriend:
		f := a.Friend
		if f.Name == "" || f.Image == "" {
			return s, ErrInvalidFriend
		}
		if s.indexOf(f.ID) >= 0 {
			return s, fmt.Errorf("add %q: %w", f.ID, ErrDuplicateID)
		}
		friends := make([]Friend, len(s.Friends), len(s.Friends)+1)
		copy(friends, s.Friends)
		s.Friends = append(friends, f)
		s.PanelOpen = false
		return s, nil

	case SelectFriend:
		s.Selection = s.Selection.Toggle(a.ID)
		s.PanelOpen = false
		return s, nil

	case ApplySplit:
		id, ok := s.Selection.ID()
		if !ok {
			return s, ErrNoSelection
		}
		i := s.indexOf(id)
		if i < 0 {
			return s, fmt.Errorf("split with %q: %w", id, ErrNoSelection)
		}
		friends := append([]Friend(nil), s.Friends...)
		friends[i].Balance += a.Delta
		s.Friends = friends
		return s, nil
	}

	return s, fmt.Errorf("unknown action %T", a)
}

// TogglePanel is shorthand for Apply(s, TogglePanel{}).
func (s State) TogglePanel() State {
	next, _ := Apply(s, TogglePanel{})
	return next
}

// AddFriend is shorthand for Apply(s, AddFriend{f}).
func (s State) AddFriend(f Friend) (State, error) {
	return Apply(s, AddFriend{Friend: f})
}

// SelectFriend is shorthand for Apply(s, SelectFriend{id}).
func (s State) SelectFriend(id string) State {
	next, _ := Apply(s, SelectFriend{ID: id})
	return next
}

// ApplySplit is shorthand for Apply(s, ApplySplit{delta}).
func (s State) ApplySplit(delta float64) (State, error) {
	return Apply(s, ApplySplit{Delta: delta})
}

// Selected returns the selected friend, if any.
func (s State) Selected() (Friend, bool) {
	id, ok := s.Selection.ID()
	if !ok {
		return Friend{}, false
	}
	i := s.indexOf(id)
	if i < 0 {
		return Friend{}, false
	}
	return s.Friends[i], true
}

// IsSelected reports whether the friend with id is the current selection.
func (s State) IsSelected(id string) bool {
	sel, ok := s.Selection.ID()
	return ok && sel == id
}

func (s State) indexOf(id string) int {
	for i := range s.Friends {
		if s.Friends[i].ID == id {
			return i
		}
	}
	return -1
}
