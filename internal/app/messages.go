package app

// Message types for the bubbletea app.

// StatusClearedMsg is sent when a status line should disappear. Seq
// matches the status it was scheduled for, so a newer status survives an
// older timer.
type StatusClearedMsg struct {
	Seq int
}
