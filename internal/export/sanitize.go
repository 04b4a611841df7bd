package export

import "strings"

// Filename maps a free-form description to a filesystem-safe token. Each
// reserved character becomes '_'; everything else, including non-ASCII,
// passes through unchanged.
func Filename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '%', '*', ':', '|', '"', '<', '>', '.', ' ':
			return '_'
		}
		return r
	}, name)
}
