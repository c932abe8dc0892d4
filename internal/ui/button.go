package ui

// Button is a stateless labelled control. The caller binds a key to it
// and runs the button's action when that key is pressed.
type Button struct {
	Label   string
	Focused bool
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return FocusedButtonStyle.Render(b.Label)
	}
	return ButtonStyle.Render(b.Label)
}
