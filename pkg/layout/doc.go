// Package layout lets a container choose among alternative arrangements of
// its children. A container carries an ordered list of descriptors (Flow,
// AreaGrid, Stack) parsed from its "layouts" array; at render time the first
// descriptor is applied to the box holding the already-rendered children.
//
// Spacing tokens resolve through a fixed table (None 0px up to ExtraLarge
// 32px, Padding 16px). Descriptors only mutate styles and classes, they never
// re-render children.
package layout
