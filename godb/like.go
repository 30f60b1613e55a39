package godb

import (
	"regexp"
	"strings"
)

// likeMatch implements SQL LIKE semantics: '%' matches any run of
// characters (including none), '_' matches exactly one character. The
// match is case-sensitive, matching the teacher's plain string equality
// comparisons elsewhere (no locale-aware folding anywhere in this core).
func likeMatch(text, pattern string) bool {
	re, err := regexp.Compile("^" + likePatternToRegexp(pattern) + "$")
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func likePatternToRegexp(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
