package parser

import (
	"fmt"
	"io"
	"strings"
)

// Report is the full text of one qCal report split into lines.
// It is read-only; every extractor scans it with its own Cursor.
type Report struct {
	lines []string
}

// NewReport reads the whole report from r.
func NewReport(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return ParseReport(string(data)), nil
}

// ParseReport splits report text into lines. Both LF and CRLF endings are accepted.
func ParseReport(text string) *Report {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return &Report{}
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Report{lines: lines}
}

// Len returns the number of lines in the report.
func (r *Report) Len() int {
	return len(r.lines)
}

// Scan returns a cursor positioned before the first line.
func (r *Report) Scan() *Cursor {
	return &Cursor{lines: r.lines}
}

// Locate scans from the start of the report for the first line whose first
// field equals marker. It returns the remaining fields of that line as the
// section header and a cursor positioned at the following line.
func (r *Report) Locate(marker string) (*Cursor, []string, error) {
	c := r.Scan()
	for {
		line, ok := c.Next()
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrSectionNotFound, marker)
		}
		fields := Tokenize(line)
		if fields[0] == marker {
			return c, fields[1:], nil
		}
	}
}

// Cursor reads a Report line by line.
type Cursor struct {
	lines []string
	pos   int
}

// Next returns the next line, or false once the report is exhausted.
func (c *Cursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// Line returns the 1-based number of the line last returned by Next.
func (c *Cursor) Line() int {
	return c.pos
}
