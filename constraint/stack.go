package constraint

import (
	"path/filepath"
	"strconv"
	"strings"
)

// SourceLocation is a position in the analyzed program's source.
type SourceLocation struct {
	File   string
	Line   int64
	Column int64
}

// String returns a formatted source location string.
func (s SourceLocation) String() string {
	if s.File == "" {
		return ""
	}
	r := filepath.Base(s.File) + ":" + strconv.FormatInt(s.Line, 10)
	if s.Column > 0 {
		r += ":" + strconv.FormatInt(s.Column, 10)
	}
	return r
}

// CallStack records the chain of call-site locations from the
// instantiation root down to a constraint's origin. A nil *CallStack is the
// root (no caller); every frame strictly extends its caller, so the
// structure is acyclic by construction. Frames are immutable and shared:
// every constraint instantiated from one call site points at the same node.
type CallStack struct {
	Location *SourceLocation
	Caller   *CallStack
}

// NewFrame extends caller with one call-site location. loc may be nil for
// synthesized constraints with no source position.
func NewFrame(loc *SourceLocation, caller *CallStack) *CallStack {
	return &CallStack{Location: loc, Caller: caller}
}

// Innermost returns the deepest location of the stack, or nil at the root
// or when the innermost frame carries no location.
func (c *CallStack) Innermost() *SourceLocation {
	if c == nil {
		return nil
	}
	return c.Location
}

// Depth returns the number of frames above the root.
func (c *CallStack) Depth() int {
	n := 0
	for ; c != nil; c = c.Caller {
		n++
	}
	return n
}

// WriteStack renders the chain innermost-first, one file:line per line.
func (c *CallStack) WriteStack(sbb *strings.Builder) {
	for ; c != nil; c = c.Caller {
		if c.Location == nil {
			sbb.WriteString("<unknown>")
		} else {
			sbb.WriteString(c.Location.String())
		}
		sbb.WriteByte('\n')
	}
}

func (c *CallStack) String() string {
	var sbb strings.Builder
	c.WriteStack(&sbb)
	return sbb.String()
}
