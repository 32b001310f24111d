package manifest

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Resolution errors. Concrete failures are *Error values that match these
// with errors.Is.
var (
	// ErrIOFailure indicates a manifest or include target could not be read.
	ErrIOFailure = errors.New("cannot read manifest")

	// ErrMalformedManifest indicates unbalanced if/else/endif nesting.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrUnsupportedConstruct marks statements outside the handled subset.
	// Resolution never fails with it; it is only reported by lint.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrIncludeCycle indicates a file includes itself, directly or not.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrIncludeDepth indicates includes nested deeper than the resolver allows.
	ErrIncludeDepth = errors.New("include depth exceeded")
)

// Error locates a resolution failure in a manifest.
type Error struct {
	// File and Line locate the offending statement. Line is 0 when the
	// failure concerns the whole file.
	File string
	Line int

	// Kind is one of the package sentinel errors.
	Kind error

	// Msg adds detail, such as the offending statement.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error renders "file:line: kind: msg: cause", omitting empty parts.
func (e *Error) Error() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(e.Line))
		}
		sb.WriteString(": ")
	}

	part := make([]string, 0, 3)
	if e.Kind != nil {
		part = append(part, e.Kind.Error())
	}
	if e.Msg != "" {
		part = append(part, e.Msg)
	}
	if e.Err != nil {
		part = append(part, e.Err.Error())
	}
	sb.WriteString(strings.Join(part, ": "))

	return sb.String()
}

// Unwrap exposes both the sentinel kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)

	if e.Kind != nil {
		attrs = append(attrs, slog.String("error", e.Kind.Error()))
	}
	if e.File != "" {
		attrs = append(attrs, slog.String("file", e.File))
	}
	if e.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.Line))
	}
	if e.Msg != "" {
		attrs = append(attrs, slog.String("detail", e.Msg))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

func malformed(line LogicalLine, msg string) *Error {
	return &Error{File: line.File, Line: line.End, Kind: ErrMalformedManifest, Msg: msg}
}
