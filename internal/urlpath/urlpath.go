// Package urlpath normalizes relative request paths and joins them onto a base URL.
package urlpath

import "strings"

// Normalize collapses every run of '/' into a single '/' and strips one
// leading '/'. Everything else in p, including query strings, is kept as is.
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(p))

	prevSlash := false
	for i := 0; i < len(p); i++ {
		ch := p[i]
		if ch == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		builder.WriteByte(ch)
	}

	return strings.TrimPrefix(builder.String(), "/")
}

// Join returns base + "/" + Normalize(rel). The separator is always written,
// so an empty rel yields a URL with a trailing slash.
func Join(base, rel string) string {
	normalized := Normalize(rel)

	var builder strings.Builder
	builder.Grow(len(base) + 1 + len(normalized))
	builder.WriteString(base)
	builder.WriteByte('/')
	builder.WriteString(normalized)
	return builder.String()
}
