// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// DeriveFilename maps a URL to a safe, deterministic filename. It takes the
// last path segment with the query string stripped; when that segment is
// empty or does not end in .pdf, it falls back to the first 10 hex
// characters of the URL's MD5 digest plus ".pdf". The result contains only
// characters in [A-Za-z0-9._-] and always ends in .pdf.
func DeriveFilename(rawURL string) string {
	name := rawURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	if name == "" || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return hashName(rawURL)
	}

	name = sanitize(name)
	// Sanitizing never strips the .pdf suffix, but guard the guarantee anyway.
	if name == "" || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return hashName(rawURL)
	}
	return name
}

// hashName is the collision-resistant fallback for URLs without a usable
// filename segment. MD5 is used for stable short names, not for security.
func hashName(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:10] + ".pdf"
}

// sanitize drops every character outside [A-Za-z0-9._-], guarding against
// path traversal and filesystem-illegal characters.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	return b.String()
}
