// Package sanitize bounds and cleans client-supplied names before they reach
// keys, object paths, or stored metadata.
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	maxFilenameLen    = 120
	maxContentTypeLen = 200
	maxSlugLen        = 60

	// DefaultContentType is stored when nothing better is known.
	DefaultContentType = "application/octet-stream"
)

// FileName strips path segments and control/path characters from a
// client-supplied filename, bounding its length. Never returns an empty
// string; a fully hostile input falls back to "file".
func FileName(input string) string {
	trimmed := strings.TrimSpace(input)
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	var b strings.Builder
	replaced := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			replaced = false
		case r == '.' || r == '_' || r == ' ' || r == '-':
			b.WriteRune(r)
			replaced = false
		default:
			// A run of disallowed characters collapses into one underscore.
			if !replaced {
				b.WriteByte('_')
			}
			replaced = true
		}
	}

	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		cleaned = "file"
	}
	if len(cleaned) > maxFilenameLen {
		// Cut on a rune boundary so the cap never leaves invalid UTF-8.
		cut := maxFilenameLen
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	return cleaned
}

// ContentType normalizes a declared MIME string, defaulting when empty.
func ContentType(ct string) string {
	v := strings.ToLower(strings.TrimSpace(ct))
	if v == "" {
		v = DefaultContentType
	}
	if len(v) > maxContentTypeLen {
		v = v[:maxContentTypeLen]
	}
	return v
}

// GuessContentType maps well-known file extensions to MIME types. Used when
// the client omitted a content type or sent the generic default.
func GuessContentType(filename string) string {
	n := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(n, ".csv"):
		return "text/csv"
	case strings.HasSuffix(n, ".json"):
		return "application/json"
	case strings.HasSuffix(n, ".txt"):
		return "text/plain"
	case strings.HasSuffix(n, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(n, ".doc"):
		return "application/msword"
	case strings.HasSuffix(n, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(n, ".xls"):
		return "application/vnd.ms-excel"
	case strings.HasSuffix(n, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(n, ".png"):
		return "image/png"
	case strings.HasSuffix(n, ".jpg"), strings.HasSuffix(n, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(n, ".webp"):
		return "image/webp"
	case strings.HasSuffix(n, ".gif"):
		return "image/gif"
	case strings.HasSuffix(n, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(n, ".ico"):
		return "image/x-icon"
	default:
		return DefaultContentType
	}
}

// Slug lowercases, folds diacritics, and collapses everything that is not
// [a-z0-9] into single dashes. Empty input yields "untitled".
func Slug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = norm.NFKD.String(s)

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from NFKD folding
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	if out == "" {
		return "untitled"
	}
	return out
}
