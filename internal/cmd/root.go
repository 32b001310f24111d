// Package cmd provides the CLI commands for amvars.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/amvars/internal/ui"
)

const version = "0.1.0"

var (
	logLevel  string
	logFormat string

	// logger is configured from the persistent flags before any command runs.
	logger = slog.New(slog.DiscardHandler)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "amvars",
	Short: "Resolve Makefile.am variables for non-autotools builds",
	Long: `amvars - Makefile.am variable resolver

Evaluates the variable subset of automake manifests (assignments, appends,
$(VAR) references, if/else/endif conditionals and includes) so that build
systems without autotools can reuse the source lists kept there.

MANIFEST COMMANDS
  resolve <manifest>    Print the resolved variables of a manifest
  lint <manifest>...    Report malformed conditionals and unsupported lines

GENERATORS
  filelist [outdir]     Write the introspection file lists
    --fc                Apply the fontconfig conditions
  pc [template [out]]   Fill in pkg-config templates

CONFIGURATION
  amvars.yaml is looked up from the working directory upward. srcroot,
  subdir, separator and outdir may be overridden with AMVARS_* variables.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New(rootCmd.ErrOrStderr()).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.SetVersionTemplate("amvars version {{.Version}}\n")
}
