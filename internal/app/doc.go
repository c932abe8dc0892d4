// Package app provides the main Bubble Tea application model for evenup.
//
// Model owns the ledger state and is the only place that applies ledger
// actions. It also holds the form sessions: the add-friend form lives
// while the panel is open and the split form while a friend is selected.
// Keys are routed by state (browse, filter, help) and, while browsing, by
// the focused pane.
package app
