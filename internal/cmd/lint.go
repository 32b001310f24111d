package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/amvars/internal/manifest"
	"github.com/cameronsjo/amvars/internal/ui"
)

var lintStrict bool

// lintCmd represents the lint command.
var lintCmd = &cobra.Command{
	Use:   "lint <manifest>...",
	Short: "Report malformed conditionals and unsupported lines",
	Long: `Check manifests before they are resolved.

Errors are unbalanced if/else/endif and failures to resolve the manifest
with every condition false, such as a missing include or an include
cycle. Lines outside the evaluated subset (rules, recipes, other
directives) are reported as warnings; they fail the run only with
--strict.

Examples:
  amvars lint pango/Makefile.am
  amvars lint --strict pango/Makefile.am pango/mini-fribidi/Makefile.am`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeManifestFiles(0),
	RunE:              runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat unsupported constructs as errors")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	p := ui.New(cmd.OutOrStdout())
	r := manifest.NewResolver(manifest.WithLogger(logger))

	var errCount, warnCount int
	for _, path := range args {
		e, w := lintManifest(p, r, path)
		errCount += e
		warnCount += w
	}

	if lintStrict {
		errCount += warnCount
	}

	switch {
	case errCount > 0:
		return fmt.Errorf("lint failed: %d error(s), %d warning(s)", errCount, warnCount)
	case warnCount > 0:
		p.Warning("%d warning(s)", warnCount)
	default:
		p.Success("%d manifest(s) clean", len(args))
	}

	return nil
}

// lintManifest reports the findings for one manifest and returns the error
// and warning counts.
func lintManifest(p *ui.Printer, r *manifest.Resolver, path string) (errCount, warnCount int) {
	findings, err := manifest.Lint(path)
	if err != nil {
		reportError(p, err)
		return 1, 0
	}

	for _, f := range findings {
		isError := !errors.Is(f, manifest.ErrUnsupportedConstruct)
		p.Diagnostic(f.File, f.Line, f.Kind.Error(), f.Msg, isError)
		if isError {
			errCount++
		} else {
			warnCount++
		}
	}

	// Resolving a file with unbalanced conditionals only repeats them.
	if errCount > 0 {
		return errCount, warnCount
	}

	if _, err := r.Resolve(path, nil, nil); err != nil {
		reportError(p, err)
		errCount++
	}

	return errCount, warnCount
}

func reportError(p *ui.Printer, err error) {
	var me *manifest.Error
	if errors.As(err, &me) && me.Kind != nil {
		msg := me.Msg
		if me.Err != nil {
			if msg != "" {
				msg += ": "
			}
			msg += me.Err.Error()
		}
		p.Diagnostic(me.File, me.Line, me.Kind.Error(), msg, true)
		return
	}
	p.Error("%v", err)
}
