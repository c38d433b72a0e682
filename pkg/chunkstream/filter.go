package chunkstream

import (
	"github.com/vnykmshr/streamkit/pkg/stream"
)

// Filter is a pure pass-through writer decorator. It holds exactly one
// wrapped stream.Writer and forwards every write verbatim, returning the
// result unchanged. It exists as the composable base for write-side
// policies; it carries no state of its own beyond the wrapped stream.
type Filter struct {
	base stream.Writer
}

// NewFilter creates a Filter over base. The Filter assumes ownership of
// base for the purpose of composition: release the outermost decorator,
// not the wrapped stream directly.
func NewFilter(base stream.Writer) *Filter {
	return &Filter{base: base}
}

// Write forwards p to the wrapped stream.
func (f *Filter) Write(p []byte) error {
	return f.base.Write(p)
}

// Base returns the wrapped stream, for decorators layering additional
// behavior on top of the pass-through.
func (f *Filter) Base() stream.Writer {
	return f.base
}
