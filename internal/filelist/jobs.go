package filelist

// privateHeader is the suffix of headers kept out of introspection.
const privateHeader = "-private.h"

// DefaultJobs returns the pango introspection lists.
func DefaultJobs() []Job {
	return []Job{
		{
			Name:      "pango",
			Manifest:  "Makefile.am",
			Variables: []string{"pango_introspection_files"},
			Exclude: Exclude{
				Suffixes: []string{privateHeader},
				Names:    []string{"pango-color-table.h"},
			},
			Output: "pango_list",
		},
		{
			Name:      "pangoft",
			Manifest:  "Makefile.am",
			Variables: []string{"pangoft2_introspection_files"},
			Exclude:   Exclude{Suffixes: []string{privateHeader}},
			Output:    "pangoft_list",
		},
		{
			Name:      "pangocairo",
			Manifest:  "Makefile.am",
			Variables: []string{"libpangocairo_1_0_la_SOURCES", "pangocairo_headers"},
			Conditions: map[string]bool{
				"HAVE_CAIRO_WIN32": true,
				"PLATFORM_WIN32":   true,
			},
			ExtraConditions: map[string]bool{
				"HAVE_CAIRO_FREETYPE": true,
			},
			Exclude:     Exclude{Suffixes: []string{privateHeader}},
			Output:      "pangocairo_list",
			ExtraOutput: "pangocairoft_list",
		},
	}
}

// Variants returns the toggle states to generate for job. When the toggle
// was not given explicitly, jobs with an ExtraOutput produce both lists.
func Variants(job Job, toggle, explicit bool) []bool {
	if explicit {
		return []bool{toggle}
	}
	if job.ExtraOutput != "" {
		return []bool{false, true}
	}
	return []bool{false}
}
