// Package ui provides rendering functions for the evenup terminal UI.
//
// It contains the Render function which takes RenderParams and produces
// the terminal output, as well as Lipgloss style definitions for theming.
// The rendering is pure (no side effects) and separated from state management.
package ui
