package schema

import (
	"fmt"
	"regexp"
)

const problemTypePrefix = "Problem_"

// problemStartRegex matches problem declarations at the start of a line.
// Captures the question id, which may contain hyphens and so is not a valid
// GraphQL name on its own.
var problemStartRegex = regexp.MustCompile(`(?m)^problem\s+([A-Za-z0-9_-]+)\s*{`)

// PreprocessGraphQL rewrites `problem <id> {` blocks into valid GraphQL type
// definitions. The id moves into a @problem directive and the type gets a
// positional name.
func PreprocessGraphQL(input string) string {
	n := 0
	return problemStartRegex.ReplaceAllStringFunc(input, func(match string) string {
		id := problemStartRegex.FindStringSubmatch(match)[1]
		n++
		return fmt.Sprintf(`type %s%d @problem(id: "%s") {`, problemTypePrefix, n, id)
	})
}
