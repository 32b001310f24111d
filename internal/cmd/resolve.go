package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/amvars/internal/manifest"
	"github.com/cameronsjo/amvars/internal/ui"
)

var (
	resolveDefines    []string
	resolveConditions []string
	resolveKeep       []string
	resolveOutput     string
)

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve <manifest>",
	Short: "Print the resolved variables of a manifest",
	Long: `Evaluate a Makefile.am and print its variable table.

Only assignments, appends, $(VAR) references, if/else/endif and include
are evaluated. Conditions not given with -c are false. Everything else in
the manifest is ignored.

Examples:
  amvars resolve pango/Makefile.am
  amvars resolve -c HAVE_CAIRO_WIN32 -k pangocairo_headers pango/Makefile.am
  amvars resolve -D srcdir=. -o json Makefile.am`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeManifestFiles(1),
	RunE:              runResolve,
}

func init() {
	resolveCmd.Flags().StringArrayVarP(&resolveDefines, "define", "D", nil, "Predefine a variable (NAME=VALUE, repeatable)")
	resolveCmd.Flags().StringSliceVarP(&resolveConditions, "cond", "c", nil, "Treat a condition as true (repeatable)")
	resolveCmd.Flags().StringSliceVarP(&resolveKeep, "keep", "k", nil, "Only print these variables (repeatable)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "text", "Output format (text, json, yaml)")

	resolveCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	defines, err := parseDefines(resolveDefines)
	if err != nil {
		return err
	}

	r := manifest.NewResolver(manifest.WithLogger(logger))
	vars, err := r.Resolve(args[0], defines, conditionSet(resolveConditions), resolveKeep...)
	if err != nil {
		return err
	}

	return writeVariables(cmd, vars, resolveOutput)
}

// writeVariables prints vars sorted by name in the given format.
func writeVariables(cmd *cobra.Command, vars manifest.Variables, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "text", "":
		p := ui.New(out)
		for _, name := range vars.Names() {
			p.KeyValue(name, vars[name])
		}
		return nil

	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(map[string]string(vars)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]string(vars)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("invalid output format %q (want text, json or yaml)", format)
	}
}
