package writer

import (
	"fmt"
	"strings"
)

// Writer builds generated source text with indentation and line comments in
// the target language's style
type Writer struct {
	sb            strings.Builder
	indentLevel   int
	indentString  string
	commentPrefix string
	linePrefix    string
	needsIndent   bool
}

// NewWriter creates a writer indenting with indentString and starting line
// comments with commentPrefix (e.g. "//" or "#")
func NewWriter(indentString, commentPrefix string) *Writer {
	return &Writer{
		indentString:  indentString,
		commentPrefix: commentPrefix,
		needsIndent:   true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.Writef(format, args...)
	w.Newline()
}

// WriteLines writes each line at the current indentation
func (w *Writer) WriteLines(lines ...string) {
	for _, line := range lines {
		w.WriteLine(line)
	}
}

// WriteText writes a multi-line block, re-indenting every non-empty line.
// Leading and trailing blank lines of text are dropped.
func (w *Writer) WriteText(text string) {
	text = strings.Trim(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			w.Newline()
			continue
		}
		w.WriteLine(line)
	}
}

// Newline adds a newline character
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output already ends with one
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes content between opener and closer, indented one level.
// Example: WriteBlock("class Solution {", "}", func() { ... })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	if closer != "" {
		w.WriteLine(closer)
	}
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("%s %s", w.commentPrefix, comment)
}

// WriteComments writes one comment line per entry
func (w *Writer) WriteComments(lines ...string) {
	for _, line := range lines {
		w.WriteComment(line)
	}
}
