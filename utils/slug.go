package utils

import (
	"strconv"
	"strings"
	"time"
)

// Slugify converts a title to a URL-safe slug. Titles with no latin letters
// or digits fall back to a time-based slug so the result is never empty.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r == '\'' || r == '"':
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}

	if slug := strings.TrimRight(b.String(), "-"); slug != "" {
		return slug
	}
	return "post-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
