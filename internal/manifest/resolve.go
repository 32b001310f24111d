package manifest

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxDepth bounds include nesting.
const DefaultMaxDepth = 64

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		r.logger = logger
	}
}

// WithMaxDepth sets the maximum include nesting. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// Resolver evaluates manifests. It holds no per-call state and may be reused.
type Resolver struct {
	logger   *slog.Logger
	maxDepth int
}

// NewResolver creates a Resolver with the given options applied.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve evaluates the manifest at path with a default Resolver.
func Resolve(path string, vars Variables, conds Conditions, filter ...string) (Variables, error) {
	return NewResolver().Resolve(path, vars, conds, filter...)
}

// state is the mutable context of one Resolve call. It is shared by
// reference with every included file.
type state struct {
	vars  Variables
	conds Conditions

	// includes is the chain of files currently being evaluated.
	includes []string
}

// frame is one open conditional block.
type frame struct {
	skip bool
	line LogicalLine
}

// Resolve evaluates the manifest at path and returns the resulting variable
// table. vars seeds the table and is not modified. When filter is non-nil
// the result holds exactly the filter names.
//
// A relative include target is resolved against the directory of the file
// that includes it, not the working directory.
//
// On error no table is returned.
func (r *Resolver) Resolve(path string, vars Variables, conds Conditions, filter ...string) (Variables, error) {
	st := &state{vars: vars.Clone(), conds: conds}

	r.logger.Debug("resolving manifest",
		slog.String("file", path),
		slog.Int("predefined", len(vars)),
		slog.Int("conditions", len(conds)),
	)

	if err := r.evalFile(st, path, nil); err != nil {
		return nil, err
	}

	if filter == nil {
		return st.vars, nil
	}

	return st.vars.Filter(filter...), nil
}

// evalFile evaluates one manifest into st. from is the include statement
// that named path, or nil for the top-level file.
func (r *Resolver) evalFile(st *state, path string, from *LogicalLine) error {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	if slices.Contains(st.includes, key) {
		return &Error{
			File: from.File,
			Line: from.End,
			Kind: ErrIncludeCycle,
			Msg:  strings.Join(append(slices.Clone(st.includes), key), " -> "),
		}
	}

	if len(st.includes) >= r.maxDepth {
		return &Error{File: from.File, Line: from.End, Kind: ErrIncludeDepth, Msg: path}
	}

	st.includes = append(st.includes, key)
	defer func() { st.includes = st.includes[:len(st.includes)-1] }()

	lines, err := ReadLines(path)
	if err != nil {
		if from != nil {
			return &Error{
				File: from.File,
				Line: from.End,
				Kind: ErrIOFailure,
				Msg:  "include " + path,
				Err:  unwrapCause(err),
			}
		}
		return err
	}

	var (
		skip  bool
		stack []frame
	)

	for _, ll := range MergeContinuations(lines) {
		stmt := Classify(ll)

		switch stmt.Kind {
		case KindIf:
			stack = append(stack, frame{skip: skip, line: ll})
			skip = !st.conds[stmt.Name]
			continue

		case KindElse:
			if len(stack) == 0 {
				return malformed(ll, "else without matching if")
			}
			skip = !skip
			continue

		case KindEndif:
			if len(stack) == 0 {
				return malformed(ll, "endif without matching if")
			}
			skip = stack[len(stack)-1].skip
			stack = stack[:len(stack)-1]
			continue
		}

		if skip {
			continue
		}

		switch stmt.Kind {
		case KindInclude:
			target := Expand(stmt.Name, st.vars)
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(path), target)
			}

			r.logger.Debug("following include",
				slog.String("file", ll.File),
				slog.Int("line", ll.End),
				slog.String("target", target),
			)

			if err := r.evalFile(st, target, &ll); err != nil {
				return err
			}

		case KindAssign:
			st.vars[stmt.Name] = Expand(stmt.Value, st.vars)

		case KindAppend:
			value := Expand(stmt.Value, st.vars)
			if old, ok := st.vars[stmt.Name]; ok {
				value = old + " " + value
			}
			st.vars[stmt.Name] = value

		default:
			if !isInert(ll.Text) {
				r.logger.Debug(ErrUnsupportedConstruct.Error(),
					slog.String("file", ll.File),
					slog.Int("line", ll.End),
					slog.String("text", strings.TrimSpace(ll.Text)),
				)
			}
		}
	}

	if len(stack) > 0 {
		return malformed(stack[len(stack)-1].line, "if without matching endif")
	}

	return nil
}

// unwrapCause returns the underlying cause of a package *Error.
func unwrapCause(err error) error {
	if e, ok := err.(*Error); ok && e.Err != nil {
		return e.Err
	}
	return err
}
