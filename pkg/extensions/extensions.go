// Package extensions registers the layout-aware container and the carousel
// types with a host element registry.
//
// Register replaces the host's default "Container" with layout.Container. The
// replacement keeps the type name, so documents that never mention layouts
// parse and render exactly as before.
package extensions

import (
	"github.com/charmbracelet/log"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/carousel"
	"github.com/goliatone/go-cardkit/pkg/layout"
)

// Option customises registration.
type Option func(*config)

type config struct {
	logger *log.Logger
}

// WithLogger sets the logger used to report overridden registrations.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Register installs the extension element types on reg.
func Register(reg *card.Registry, options ...Option) {
	if reg == nil {
		return
	}
	cfg := config{logger: log.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	registrations := []struct {
		name    string
		factory card.Factory
	}{
		{card.TypeContainer, func() card.Element { return layout.NewContainer() }},
		{carousel.TypeCarousel, func() card.Element { return carousel.NewCarousel() }},
		{carousel.TypePage, func() card.Element { return carousel.NewPage() }},
	}
	for _, r := range registrations {
		replaced, err := reg.Register(r.name, r.factory)
		if err != nil {
			cfg.logger.Error("register extension element", "type", r.name, "err", err)
			continue
		}
		if replaced {
			cfg.logger.Debug("extension replaced element registration", "type", r.name)
		}
	}
}

// NewRegistry returns the host defaults with the extensions installed.
func NewRegistry(options ...Option) *card.Registry {
	reg := card.NewDefaultRegistry()
	Register(reg, options...)
	return reg
}
