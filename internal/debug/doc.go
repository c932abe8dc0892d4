// Package debug provides debug logging for evenup.
//
// When enabled via the --debug flag, every dispatched action and any
// rejected transition is written to a log file so state changes can be
// traced after the fact. Nothing is written while disabled.
package debug
