package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/amvars/internal/config"
)

// completeManifestFiles returns a completion function restricting file
// completion to automake manifests. limit bounds the number of manifest
// arguments; 0 means no limit.
func completeManifestFiles(limit int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if limit > 0 && len(args) >= limit {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{"am"}, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeTemplateFiles restricts file completion to .in templates for the
// first argument and leaves the output argument open.
func completeTemplateFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return []string{"in"}, cobra.ShellCompDirectiveFilterFileExt
	case 1:
		return nil, cobra.ShellCompDirectiveDefault
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeJobNames completes the job names from the project configuration.
func completeJobNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range jobNames(cfg.Jobs) {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
