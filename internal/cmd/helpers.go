package cmd

import (
	"fmt"
	"strings"

	"github.com/cameronsjo/amvars/internal/filelist"
	"github.com/cameronsjo/amvars/internal/manifest"
)

// parseDefines turns NAME=VALUE pairs into a map. Later pairs win. The value
// may be empty or contain '='.
func parseDefines(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid definition %q (want NAME=VALUE)", pair)
		}
		out[name] = value
	}
	return out, nil
}

// conditionSet marks each name true.
func conditionSet(names []string) manifest.Conditions {
	conds := make(manifest.Conditions, len(names))
	for _, name := range names {
		conds[name] = true
	}
	return conds
}

// selectJobs returns the jobs named in names, in configuration order. An
// empty names selects every job.
func selectJobs(jobs []filelist.Job, names []string) ([]filelist.Job, error) {
	if len(names) == 0 {
		return jobs, nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	var selected []filelist.Job
	for _, job := range jobs {
		if want[job.Name] {
			selected = append(selected, job)
			delete(want, job.Name)
		}
	}

	for _, name := range names {
		if want[name] {
			return nil, fmt.Errorf("unknown job %q", name)
		}
	}

	return selected, nil
}

// jobNames lists the names of jobs.
func jobNames(jobs []filelist.Job) []string {
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.Name)
	}
	return names
}
