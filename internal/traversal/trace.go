package traversal

// Trace is an optional, purely additive instrumentation sink for
// CastRay, letting tests and diagnostics observe how much of the tree a
// query actually touched without reaching into store internals.
type Trace struct {
	RootVisits int
	NodeVisits int
	LeafVisits int
}
