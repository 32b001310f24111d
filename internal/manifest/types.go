package manifest

import (
	"maps"
	"slices"
	"strings"
)

// RawLine is one physical line of a manifest.
type RawLine struct {
	// File is the path the line was read from.
	File string

	// Line is the 1-based line number within File.
	Line int

	// Text is the line content without its trailing newline.
	Text string
}

// LogicalLine is one statement, formed from one or more continued RawLines.
type LogicalLine struct {
	File string

	// Start and End are the first and last physical lines consumed.
	Start int
	End   int

	// Text is the merged content with continuation markers removed.
	Text string
}

// Conditions maps automake conditional names to their truth value.
// Names that are absent are false.
type Conditions map[string]bool

// Variables maps variable names to their resolved text.
type Variables map[string]string

// Clone returns a copy of v that is never nil.
func (v Variables) Clone() Variables {
	if v == nil {
		return make(Variables)
	}
	return maps.Clone(v)
}

// Filter returns a table holding exactly the given names.
// Names that are not defined in v map to the empty string.
func (v Variables) Filter(names ...string) Variables {
	out := make(Variables, len(names))
	for _, name := range names {
		out[name] = v[name]
	}
	return out
}

// Fields splits the value of name on whitespace.
func (v Variables) Fields(name string) []string {
	return strings.Fields(v[name])
}

// Names returns the defined variable names in sorted order.
func (v Variables) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Kind identifies the statement form of a LogicalLine.
type Kind int

const (
	KindOther Kind = iota
	KindAssign
	KindAppend
	KindIf
	KindElse
	KindEndif
	KindInclude
)

func (k Kind) String() string {
	switch k {
	case KindAssign:
		return "assign"
	case KindAppend:
		return "append"
	case KindIf:
		return "if"
	case KindElse:
		return "else"
	case KindEndif:
		return "endif"
	case KindInclude:
		return "include"
	default:
		return "other"
	}
}

// Statement is a classified LogicalLine.
type Statement struct {
	Kind Kind

	// Name is the variable name for assign/append, the condition for if,
	// and the unexpanded target for include.
	Name string

	// Value is the trimmed, unexpanded right-hand side of assign/append.
	Value string

	Line LogicalLine
}
