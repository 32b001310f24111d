package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/amvars/internal/config"
	"github.com/cameronsjo/amvars/internal/ui"
)

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the project configuration",
	Long: `Inspect amvars.yaml.

The file is looked up from the working directory upward. Without one the
built-in pango defaults apply.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.File != "" {
		fmt.Fprintf(out, "# %s\n", cfg.File)
	} else {
		fmt.Fprintf(out, "# defaults (no %s found)\n", config.FileName)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		root, err := config.FindRoot()
		if err != nil {
			return err
		}
		path = filepath.Join(root, config.FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	issues, err := config.Validate(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	p := ui.New(cmd.OutOrStdout())
	if len(issues) == 0 {
		p.Success("%s is valid", path)
		return nil
	}

	for _, issue := range issues {
		p.Error("%s", issue)
	}
	return fmt.Errorf("%s: %d issue(s)", path, len(issues))
}
