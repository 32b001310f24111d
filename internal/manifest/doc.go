// Package manifest resolves variable definitions in automake-style
// Makefile.am manifests.
//
// Only the variable subset of the dialect is understood:
//
//   - NAME = VALUE and NAME += VALUE assignments
//   - backslash line continuation
//   - if COND / else / endif blocks, evaluated against a caller supplied
//     condition map
//   - include FILE
//   - $(NAME) references, expanded once at the point of use
//
// Rules, recipes and make functions are ignored.
//
// # Resolution
//
//	vars, err := manifest.Resolve("pango/Makefile.am",
//		manifest.Variables{"srcdir": "."},
//		manifest.Conditions{"PLATFORM_WIN32": true},
//		"pango_introspection_files")
//
// With no filter names every variable defined during the pass is returned.
// With filter names the result holds exactly those names; undefined ones map
// to the empty string.
package manifest
