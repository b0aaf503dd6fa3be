package ini

import (
	"bufio"
	"io"
	"strings"
)

// =========================
// Line Grammar
// =========================

const whitespace = " \t\n\r\f\v"

// Trim strips leading and trailing whitespace (space, tab, newline, carriage
// return, form feed and vertical tab).
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}

// SplitComment splits line at the first `;` or `#` that is not preceded by a
// backslash. It returns the content before the marker, the raw text after it
// and whether a marker was found at all; an empty comment with ok true means
// the marker was present but nothing followed it.
func SplitComment(line string) (content, comment string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case ';', '#':
			return line[:i], line[i+1:], true
		}
	}
	return line, "", false
}

// FormatComment renders comment text as `#` lines, one per line of text.
func FormatComment(comment string) string {
	if comment == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(comment, "\n") {
		if line == "" {
			b.WriteString("#\n")
			continue
		}
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Escape prepares a name or value for output so that Unescape, applied to
// what the parser reads back, returns s. A run of backslashes in front of a
// `;`, a `#` or the end of s is doubled, and the marker itself gets one more.
// Other backslashes are written as they are.
func Escape(s string) string {
	if !strings.ContainsAny(s, `\;#`) {
		return s
	}
	var b strings.Builder
	run := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			run++
			continue
		case ';', '#':
			b.WriteString(strings.Repeat(`\`, 2*run+1))
			b.WriteByte(c)
		default:
			b.WriteString(strings.Repeat(`\`, run))
			b.WriteByte(c)
		}
		run = 0
	}
	b.WriteString(strings.Repeat(`\`, 2*run))
	return b.String()
}

// Unescape reverses Escape on text read from a line. Backslashes in front of
// a `;` or `#` are halved and drop the one that escaped the marker; a run at
// the end of s is halved, keeping an odd one left over.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	run := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			run++
			continue
		case ';', '#':
			b.WriteString(strings.Repeat(`\`, run/2))
			b.WriteByte(c)
		default:
			b.WriteString(strings.Repeat(`\`, run))
			b.WriteByte(c)
		}
		run = 0
	}
	b.WriteString(strings.Repeat(`\`, run/2+run%2))
	return b.String()
}

// continued reports whether s ends in an odd run of backslashes, the last of
// which joins the next line.
func continued(s string) bool {
	n := len(s) - len(strings.TrimRight(s, `\`))
	return n%2 == 1
}

func isSectionHeader(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

// commentBuf accumulates comment lines until a key or section claims them.
type commentBuf struct {
	lines []string
}

func (c *commentBuf) add(s string) {
	c.lines = append(c.lines, s)
}

func (c *commentBuf) empty() bool { return len(c.lines) == 0 }

func (c *commentBuf) take() string {
	s := strings.Join(c.lines, "\n")
	c.lines = c.lines[:0]
	return s
}

// lineReader hands out lines one at a time and counts them.
type lineReader struct {
	scanner *bufio.Scanner
	lineNo  int
}

func newLineReader(r io.Reader, maxLine int) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, min(4096, maxLine)), maxLine)
	return &lineReader{scanner: s}
}

func (r *lineReader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.lineNo++
	return r.scanner.Text(), true
}

func (r *lineReader) err() error {
	return r.scanner.Err()
}
