package ledger

// Selection is either None or Selected(id). The zero value is None.
type Selection struct {
	id  string
	set bool
}

// None is the empty selection.
func None() Selection {
	return Selection{}
}

// Selected returns a selection holding id.
func Selected(id string) Selection {
	return Selection{id: id, set: true}
}

// ID returns the selected id and whether anything is selected.
func (s Selection) ID() (string, bool) {
	return s.id, s.set
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return !s.set
}

// Toggle returns the selection after clicking id: clicking the selected
// friend clears the selection, clicking any other friend selects it.
func (s Selection) Toggle(id string) Selection {
	if s.set && s.id == id {
		return None()
	}
	return Selected(id)
}
