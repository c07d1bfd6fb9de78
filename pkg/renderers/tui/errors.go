package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoCarousel is returned when the rendered card holds no carousel to
	// browse. The card text has already been printed.
	ErrNoCarousel = errors.New("tui: card has no carousel")
)
