package cmd

import (
	"errors"
	"maps"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/amvars/internal/config"
	"github.com/cameronsjo/amvars/internal/pkgconfig"
	"github.com/cameronsjo/amvars/internal/ui"
)

var pcDefines []string

// pcCmd represents the pc command.
var pcCmd = &cobra.Command{
	Use:   "pc [template.in [output]]",
	Short: "Fill in pkg-config templates",
	Long: `Replace @KEY@ tokens in pkg-config templates.

Values come from the values section of amvars.yaml, overridden by -D.
Tokens without a value are left as they are. With no arguments every
template listed in amvars.yaml is rendered. Without an output argument the
.in suffix is dropped from the template name.

Examples:
  amvars pc
  amvars pc pango.pc.in
  amvars pc -D VERSION=1.44.7 -D prefix=c:/vs/x64 pango.pc.in pango.pc`,
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completeTemplateFiles,
	RunE:              runPC,
}

func init() {
	pcCmd.Flags().StringArrayVarP(&pcDefines, "define", "D", nil, "Set a template value (KEY=VALUE, repeatable)")

	rootCmd.AddCommand(pcCmd)
}

func runPC(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	defines, err := parseDefines(pcDefines)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(cfg.Values)+len(defines))
	maps.Copy(values, cfg.Values)
	maps.Copy(values, defines)

	var templates []pkgconfig.Template
	switch len(args) {
	case 0:
		templates = cfg.TemplateFiles()
		if len(templates) == 0 {
			return errors.New("no templates given and none configured in " + config.FileName)
		}
	case 1:
		templates = []pkgconfig.Template{{Input: args[0]}}
	default:
		templates = []pkgconfig.Template{{Input: args[0], Output: args[1]}}
	}

	p := ui.New(cmd.OutOrStdout())
	for _, t := range templates {
		if err := pkgconfig.Render(t, values); err != nil {
			return err
		}
		p.Success("%s", t.OutputPath())
	}

	return nil
}
