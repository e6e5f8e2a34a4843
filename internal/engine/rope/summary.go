package rope

import "unicode/utf8"

// Summary holds aggregated metrics for a span of text.
// It is a monoid under Add, so a node's summary is the sum of its children.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the code point count.
	Chars int

	// Lines is the number of line terminators. Every '\r' counts, and so
	// does every '\n' that does not directly follow a '\r', which makes
	// "\r\n" a single terminator.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags Flags
}

// Flags indicate text properties.
type Flags uint8

const (
	// FlagASCII indicates every character is ASCII, so characters and
	// bytes line up.
	FlagASCII Flags = 1 << iota

	// FlagStartsLF indicates the span begins with '\n'.
	FlagStartsLF

	// FlagEndsCR indicates the span ends with '\r'.
	FlagEndsCR
)

// Add combines the summary of a span with the summary of the span that
// follows it.
func (s Summary) Add(other Summary) Summary {
	if s.Chars == 0 {
		return other
	}
	if other.Chars == 0 {
		return s
	}

	out := Summary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags&other.Flags&FlagASCII | s.Flags&FlagStartsLF | other.Flags&FlagEndsCR,
	}
	// A '\r' closing s and a '\n' opening other are one "\r\n".
	if s.Flags&FlagEndsCR != 0 && other.Flags&FlagStartsLF != 0 {
		out.Lines--
	}
	return out
}

// Summarize computes the summary of s.
func Summarize(s string) Summary {
	sum := Summary{Bytes: len(s), Flags: FlagASCII}
	prev := rune(-1)
	for _, r := range s {
		if sum.Chars == 0 && r == '\n' {
			sum.Flags |= FlagStartsLF
		}
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if r == '\r' || (r == '\n' && prev != '\r') {
			sum.Lines++
		}
		sum.Chars++
		prev = r
	}
	if prev == '\r' {
		sum.Flags |= FlagEndsCR
	}
	return sum
}
