package schema

import (
	"fmt"
	"strings"
)

// Writer builds SDL text line by line. Indentation is applied lazily to the
// first non-empty write of each line, so blank lines carry no trailing spaces.
type Writer struct {
	sb     strings.Builder
	unit   string
	depth  int
	prefix string
	atBOL  bool
}

func NewWriter(unit string) *Writer {
	return &Writer{unit: unit, atBOL: true}
}

func (w *Writer) Indent() {
	w.depth++
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Dedent is a no-op at depth zero.
func (w *Writer) Dedent() {
	if w.depth == 0 {
		return
	}
	w.depth--
	w.prefix = strings.Repeat(w.unit, w.depth)
}

func (w *Writer) Write(s string) {
	if s == "" {
		return
	}
	if w.atBOL {
		w.sb.WriteString(w.prefix)
		w.atBOL = false
	}
	w.sb.WriteString(s)
}

func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

func (w *Writer) WriteLinef(format string, args ...any) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

func (w *Writer) Newline() {
	w.sb.WriteByte('\n')
	w.atBOL = true
}

// BlankLine separates definitions. It never emits two blank lines in a row
// or a blank line at the very start.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// WriteBlock writes opener, the body one level deeper, then closer.
func (w *Writer) WriteBlock(opener, closer string, body func()) {
	w.WriteLine(opener)
	w.Indent()
	body()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteDescription prints desc as a quoted string when it is a single plain
// line and as a block string otherwise.
func (w *Writer) WriteDescription(desc string) {
	if desc == "" {
		return
	}
	if !strings.ContainsAny(desc, "\n\"\\") {
		w.WriteLine(quoteString(desc))
		return
	}
	w.WriteLine(`"""`)
	for _, line := range strings.Split(desc, "\n") {
		if line == "" {
			w.Newline()
			continue
		}
		w.WriteLine(strings.ReplaceAll(line, `"""`, `\"""`))
	}
	w.WriteLine(`"""`)
}

func (w *Writer) String() string {
	return w.sb.String()
}
