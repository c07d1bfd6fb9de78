// Package template defines the template engine contract used by page
// renderers. The pongo subpackage provides the default implementation.
package template
