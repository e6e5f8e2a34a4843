package reflow

// isWhitespace reports whether r is a break candidate. Line terminators and
// the other vertical spaces are not; zero width and no-break spaces are.
func isWhitespace(r rune) bool {
	switch r {
	case '\t', ' ', '\u00a0', '\u180e', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200b'
}
