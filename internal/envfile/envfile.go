// Package envfile reads `.env`-style files of KEY=value lines.
//
// The parser is best effort: a line only contributes an entry when it
// splits into exactly `name = value`. Comments, blank lines and anything
// else that does not have that shape are skipped without an error, since
// real .env files routinely carry them.
package envfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultPath is the environment file consulted when none is configured.
const DefaultPath = ".env"

// identifier is anchored at the start only: a name that merely begins with
// a valid identifier is accepted as a whole.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*`)

// Parse turns the contents of an environment file into a mapping.
// Later assignments to the same name win.
func Parse(text string) map[string]string {
	env := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		tokens, err := splitWords(line)
		if err != nil || len(tokens) != 3 {
			continue
		}
		name, op, value := tokens[0], tokens[1], tokens[2]
		if op != "=" || !identifier.MatchString(name) {
			continue
		}
		env[name] = value
	}
	return env
}

// Load reads and parses the file at path. A missing file yields an empty
// mapping, not an error.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read env file %q: %w", path, err)
	}
	return Parse(string(data)), nil
}
