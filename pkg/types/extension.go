package types

import "strings"

// HasExtension reports whether name ends with "."+ext for one of exts,
// ignoring case. It returns the matched extension as given in exts.
func HasExtension(name string, exts []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		if strings.HasSuffix(lower, "."+strings.ToLower(ext)) {
			return ext, true
		}
	}
	return "", false
}
