package manifest

// Lint checks a single manifest without evaluating it. It reports unbalanced
// conditionals and statements outside the handled subset. Includes are not
// followed.
//
// The returned error is non-nil only when the file cannot be read.
func Lint(path string) ([]*Error, error) {
	stmts, err := Parse(path)
	if err != nil {
		return nil, err
	}

	var (
		findings []*Error
		open     []LogicalLine
	)

	for _, stmt := range stmts {
		switch stmt.Kind {
		case KindIf:
			open = append(open, stmt.Line)

		case KindElse:
			if len(open) == 0 {
				findings = append(findings, malformed(stmt.Line, "else without matching if"))
			}

		case KindEndif:
			if len(open) == 0 {
				findings = append(findings, malformed(stmt.Line, "endif without matching if"))
				continue
			}
			open = open[:len(open)-1]

		case KindOther:
			if !isInert(stmt.Line.Text) {
				findings = append(findings, &Error{
					File: stmt.Line.File,
					Line: stmt.Line.End,
					Kind: ErrUnsupportedConstruct,
					Msg:  stmt.Line.Text,
				})
			}
		}
	}

	for _, ll := range open {
		findings = append(findings, malformed(ll, "if without matching endif"))
	}

	return findings, nil
}
