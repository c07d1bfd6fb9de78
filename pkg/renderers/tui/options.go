package tui

import (
	"github.com/charmbracelet/log"

	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// Theme captures optional message prefixes the browser applies when
// printing. Keep minimal to avoid coupling browsing logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the browser.
type Option func(*Browser)

// WithPromptDriver overrides the prompt driver used by the browser.
func WithPromptDriver(driver PromptDriver) Option {
	return func(b *Browser) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(b *Browser) {
		b.theme = theme
	}
}

// WithLogger sets the logger handed to rendered elements.
func WithLogger(logger *log.Logger) Option {
	return func(b *Browser) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock supplies the manual clock driving auto-advance. The "wait" menu
// entry advances it by the carousel timer.
func WithClock(clock *schedule.Manual) Option {
	return func(b *Browser) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithConfirmQuit asks for confirmation before leaving the session.
func WithConfirmQuit(confirm bool) Option {
	return func(b *Browser) {
		b.confirmQuit = confirm
	}
}
