package matcher

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity is the case-insensitive character-level SequenceMatcher ratio
// of a and b, in [0, 1].
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b))).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
