// Package orchestrator wires the loader → parser → validator → theme →
// renderer pipeline behind a single Generate call, with every stage
// replaceable through options.
package orchestrator
