package manifest

import (
	"regexp"
)

// refPattern matches $(NAME) references.
var refPattern = regexp.MustCompile(`\$\((\w+)\)`)

// Expand replaces every $(NAME) in text with its value in vars.
// Undefined names expand to the empty string. Substituted values are not
// rescanned, so a value containing $(...) is inserted literally.
func Expand(text string, vars Variables) string {
	return refPattern.ReplaceAllStringFunc(text, func(match string) string {
		// Strip "$(" and ")"
		return vars[match[2:len(match)-1]]
	})
}

// References returns the variable names referenced by text, in order of
// appearance, including duplicates.
func References(text string) []string {
	var names []string
	for _, m := range refPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}
