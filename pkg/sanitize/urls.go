package sanitize

import (
	"net/url"
	"strings"
)

// SafeURL validates an href or src value. It accepts http, https and mailto
// URLs, root-relative paths and fragment references, and returns the value
// with surrounding whitespace removed. Anything else, including values that
// do not parse, is rejected.
func SafeURL(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(v, "#"):
		return v, true
	case strings.HasPrefix(v, "//"), strings.HasPrefix(v, `/\`):
		return "", false
	case strings.HasPrefix(v, "/"):
		if _, err := url.Parse(v); err != nil {
			return "", false
		}
		return v, true
	}

	u, err := url.Parse(v)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return "", false
		}
		return v, true
	case "mailto":
		if u.Opaque == "" && u.Path == "" {
			return "", false
		}
		return v, true
	}
	return "", false
}
