package renderer

import (
	"bytes"
	"io"
)

// ConditionalBlock buffers a report section and writes it to w only if
// block returns true, e.g. when a table turned out to have rows.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var section bytes.Buffer
	if block(&section) {
		section.WriteTo(w)
	}
}
