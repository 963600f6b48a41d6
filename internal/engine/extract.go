package engine

import (
	"regexp"
	"strings"

	"github.com/maxbolgarin/errm"
)

// KeyExtractor pulls issue tracker keys out of free text using a
// configured pattern. When the pattern carries a capture group, group 1
// isolates the key, otherwise the whole match is used.
type KeyExtractor struct {
	re       *regexp.Regexp
	hasGroup bool
}

// NewKeyExtractor compiles the pattern with case-insensitive matching.
func NewKeyExtractor(pattern string) (*KeyExtractor, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errm.Wrap(err, "invalid ticket pattern")
	}
	return &KeyExtractor{
		re:       re,
		hasGroup: re.NumSubexp() > 0,
	}, nil
}

// Extract returns the ticket keys found in text, uppercased and
// deduplicated in first-seen order. It never fails: text without a
// single match yields nil.
func (e *KeyExtractor) Extract(text string) []string {
	matches := e.re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))

	for _, m := range matches {
		key := m[0]
		if e.hasGroup {
			key = m[1]
		}
		key = strings.ToUpper(key)

		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
