package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/amvars/internal/config"
	"github.com/cameronsjo/amvars/internal/filelist"
	"github.com/cameronsjo/amvars/internal/lock"
	"github.com/cameronsjo/amvars/internal/manifest"
	"github.com/cameronsjo/amvars/internal/ui"
)

var (
	filelistFontconfig bool
	filelistJobs       []string
)

// filelistCmd represents the filelist command.
var filelistCmd = &cobra.Command{
	Use:   "filelist [outdir]",
	Short: "Write the introspection file lists",
	Long: `Resolve the configured jobs and write one file list per job.

Each list holds one path per line, prefixed with srcroot and subdir and
using the configured separator. The output directory defaults to outdir
from amvars.yaml and is locked while the lists are written.

Without --fc, jobs that have a fontconfig variant write both lists. With
--fc=true or --fc=false only that variant is written.

Examples:
  amvars filelist               # Write every list into outdir
  amvars filelist build/win32   # Write into another directory
  amvars filelist --fc -j pangocairo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilelist,
}

func init() {
	filelistCmd.Flags().BoolVar(&filelistFontconfig, "fc", false, "Apply the fontconfig conditions")
	filelistCmd.Flags().StringSliceVarP(&filelistJobs, "job", "j", nil, "Only run these jobs (repeatable)")

	filelistCmd.RegisterFlagCompletionFunc("job", completeJobNames)

	rootCmd.AddCommand(filelistCmd)
}

func runFilelist(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	jobs, err := selectJobs(cfg.Jobs, filelistJobs)
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir()
	if len(args) == 1 {
		if outDir, err = filepath.Abs(args[0]); err != nil {
			return err
		}
	}

	opts := cfg.FilelistOptions()
	explicit := cmd.Flags().Changed("fc")
	r := manifest.NewResolver(manifest.WithLogger(logger))
	p := ui.New(cmd.OutOrStdout())

	logger.Info("generating file lists",
		slog.String("outdir", outDir),
		slog.Any("jobs", jobNames(jobs)),
	)

	return lock.WithLock(outDir, "filelist", func() error {
		for _, job := range jobs {
			for _, extra := range filelist.Variants(job, filelistFontconfig, explicit) {
				jobOpts := opts
				jobOpts.Extra = extra

				dest, err := filelist.Generate(r, logger, job, jobOpts, outDir)
				if err != nil {
					return err
				}
				p.Success("%s", dest)
			}
		}
		return nil
	})
}
