package generator

import (
	"fmt"
	"strings"
)

// Document is an append-only sequence of output lines, built in
// emission order and serialized verbatim. There is no random access;
// byte-identical input records always serialize to byte-identical
// text.
type Document struct {
	lines []string
}

// Append adds one line.
func (d *Document) Append(line string) {
	d.lines = append(d.lines, line)
}

// Appendf adds one formatted line.
func (d *Document) Appendf(format string, args ...interface{}) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the emitted lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// String serializes the document with newline separators and a
// trailing newline.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n") + "\n"
}
