// Package render defines the output renderer contract for parsed cards, a
// name-keyed renderer registry, theme resolution through go-theme and the
// grouping of parse diagnostics for display.
package render
