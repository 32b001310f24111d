package manifest

import (
	"os"
	"regexp"
	"strings"
)

// continuation matches a trailing backslash followed only by whitespace.
var continuation = regexp.MustCompile(`\\\s*$`)

var (
	ifPattern      = regexp.MustCompile(`^\s*if\s+(\w+)`)
	elsePattern    = regexp.MustCompile(`^\s*else\b`)
	endifPattern   = regexp.MustCompile(`^\s*endif\b`)
	assignPattern  = regexp.MustCompile(`^\s*(\w+)\s*=(.*)$`)
	appendPattern  = regexp.MustCompile(`^\s*(\w+)\s*\+=(.*)$`)
	includePattern = regexp.MustCompile(`^\s*include\s+(\S+)`)
)

// ReadLines reads the physical lines of the manifest at path.
func ReadLines(path string) ([]RawLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Kind: ErrIOFailure, Err: err}
	}

	return SplitLines(path, string(data)), nil
}

// SplitLines splits content into RawLines attributed to file.
// A trailing newline does not produce an empty final line.
func SplitLines(file, content string) []RawLine {
	if content == "" {
		return nil
	}

	texts := strings.Split(content, "\n")
	if texts[len(texts)-1] == "" {
		texts = texts[:len(texts)-1]
	}

	lines := make([]RawLine, len(texts))
	for i, text := range texts {
		lines[i] = RawLine{File: file, Line: i + 1, Text: text}
	}

	return lines
}

// MergeContinuations joins continued lines into logical lines.
//
// The continuation marker is removed and the next line's text is appended
// directly, without a separator. A run ends with the first line that is not
// itself continued, which is appended whole.
func MergeContinuations(lines []RawLine) []LogicalLine {
	merged := make([]LogicalLine, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		ll := LogicalLine{File: raw.File, Start: raw.Line, End: raw.Line, Text: raw.Text}

		if continuation.MatchString(raw.Text) {
			var sb strings.Builder
			sb.WriteString(stripContinuation(raw.Text))

			for i+1 < len(lines) {
				i++
				next := lines[i]
				ll.End = next.Line

				if !continuation.MatchString(next.Text) {
					sb.WriteString(next.Text)
					break
				}
				sb.WriteString(stripContinuation(next.Text))
			}

			ll.Text = sb.String()
		}

		merged = append(merged, ll)
	}

	return merged
}

func stripContinuation(text string) string {
	return continuation.ReplaceAllString(text, "")
}

// Classify decodes the statement form of a logical line.
// Conditionals are recognized first, then assignments, then include.
// else and endif must end at a word boundary, so "elsewhere = 1" is an
// assignment rather than an else.
func Classify(line LogicalLine) Statement {
	stmt := Statement{Kind: KindOther, Line: line}
	text := line.Text

	switch {
	case ifPattern.MatchString(text):
		stmt.Kind = KindIf
		stmt.Name = ifPattern.FindStringSubmatch(text)[1]

	case elsePattern.MatchString(text):
		stmt.Kind = KindElse

	case endifPattern.MatchString(text):
		stmt.Kind = KindEndif

	case assignPattern.MatchString(text):
		m := assignPattern.FindStringSubmatch(text)
		stmt.Kind = KindAssign
		stmt.Name, stmt.Value = m[1], strings.TrimSpace(m[2])

	case appendPattern.MatchString(text):
		m := appendPattern.FindStringSubmatch(text)
		stmt.Kind = KindAppend
		stmt.Name, stmt.Value = m[1], strings.TrimSpace(m[2])

	case includePattern.MatchString(text):
		stmt.Kind = KindInclude
		stmt.Name = includePattern.FindStringSubmatch(text)[1]
	}

	return stmt
}

// Parse reads, merges and classifies every statement of one manifest
// without evaluating it.
func Parse(path string) ([]Statement, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	logical := MergeContinuations(lines)
	stmts := make([]Statement, len(logical))
	for i, ll := range logical {
		stmts[i] = Classify(ll)
	}

	return stmts, nil
}

// isInert reports whether an unclassified line is blank or a comment.
func isInert(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
