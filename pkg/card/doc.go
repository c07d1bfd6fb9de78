// Package card implements the host side of go-cardkit: the element contract,
// the base element and container, a handful of leaf elements and actions, the
// last-registration-wins registries, and the root AdaptiveCard document.
// Parsing is permissive. Malformed optional input degrades to defaults and a
// Diagnostic on the ParseContext rather than an error, so one bad entry never
// discards the rest of a document.
package card
