// Package issuekey resolves human-supplied ticket references into Jira issue keys.
package issuekey

import (
	"regexp"
	"strings"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

// keyRe matches a Jira issue key: uppercase project prefix, hyphen, numeric id.
var keyRe = regexp.MustCompile(`\b([A-Z][A-Z0-9]+-\d+)\b`)

// browseMarker separates the site root from the issue key in ticket URLs.
const browseMarker = "browse/"

// Resolve extracts an issue key from input, which may be a bare key
// (ABC-123) or a ticket URL (https://host/browse/ABC-123?query). For URLs,
// only the path segment following "browse/" is considered; trailing path,
// query, and fragment are discarded. It never guesses: unresolvable input
// fails with MissingKey so the caller can prompt the user for the key.
func Resolve(input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", clierr.New(clierr.MissingKey,
			"no issue key given — provide a key like ABC-123 or a /browse/ URL")
	}

	if idx := strings.Index(candidate, browseMarker); idx >= 0 {
		candidate = candidate[idx+len(browseMarker):]
		// Everything up to the next path separator, query, or fragment.
		if end := strings.IndexAny(candidate, "/?#"); end >= 0 {
			candidate = candidate[:end]
		}
	}

	key := keyRe.FindString(candidate)
	if key == "" || key != candidate {
		return "", clierr.Newf(clierr.MissingKey,
			"could not find a Jira issue key in %q — expected a key like ABC-123", input)
	}
	return key, nil
}
