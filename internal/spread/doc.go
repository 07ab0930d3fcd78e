// Package spread describes how a sequence of pages is grouped into spreads,
// the visual units of one or two pages shown side by side. A Configuration
// is an immutable value: it is rebuilt (never mutated) whenever the viewport
// or the page count changes, and compared with Equal to decide whether a
// relayout is needed.
package spread

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'verso.spread'
func tracer() tracing.Trace {
	return tracing.Select("verso.spread")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
