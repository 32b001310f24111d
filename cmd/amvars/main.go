// Command amvars resolves Makefile.am variables and generates the file
// lists and pkg-config descriptors of non-autotools pango builds.
package main

import "github.com/cameronsjo/amvars/internal/cmd"

func main() {
	cmd.Execute()
}
