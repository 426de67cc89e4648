package testutil

import (
	"regexp"
	"strings"
)

var runIDPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Normalize makes command output stable for golden comparison. Run IDs
// become <run-id> and every occurrence of each root becomes <root>.
func Normalize(data []byte, roots ...string) []byte {
	s := string(data)
	for _, root := range roots {
		if root != "" {
			s = strings.ReplaceAll(s, root, "<root>")
		}
	}
	s = runIDPattern.ReplaceAllString(s, "<run-id>")
	return []byte(s)
}
