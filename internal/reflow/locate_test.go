package reflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		width  int
		want   int
		wantOK bool
	}{
		{"fits exactly", "the quick brown fox", 19, 0, false},
		{"shorter than width", "abc def", 20, 0, false},
		{"zero width", "the quick brown fox jumps", 0, 0, false},
		{"negative width", "the quick brown fox jumps", -1, 0, false},
		{"space after fox", "the quick brown fox jumps", 20, 19, true},
		{"last space wins over earlier ones", "aaa bbb ccc ddd", 9, 7, true},
		{"space at last column", "abcd efgh", 5, 4, true},
		{"overlong word breaks after it", "superlongword next", 5, 13, true},
		{"first space past limit", "abcde fgh", 5, 5, true},
		{"no whitespace", "abcdefghijklmnop", 5, 0, false},
		{"tab counts as whitespace", "aaaa\tbbbbbb", 6, 4, true},
		{"codepoints not bytes", "héllo wörld ünï", 12, 11, true},
		{"wide runes count once", "日本語 日本語 日本語", 8, 7, true},
		{"trailing whitespace only past limit", "abcdefgh ", 5, 8, true},
		{"indentation is not a break", "        abcdefghijkl", 10, 0, false},
		{"indentation skipped for first space after text", "    aaaa bbbbbbb", 6, 8, true},
		{"whitespace-only line", "            ", 5, 0, false},
		{"zero width space breaks", "aaaa\u200bbbbbbbb", 6, 4, true},
		{"byte order mark breaks", "aaaa\ufeffbbbbbbb", 6, 4, true},
		{"mongolian vowel separator breaks", "aaaa\u180ebbbbbbb", 6, 4, true},
		{"no-break space breaks", "aaaa\u00a0bbbbbbb", 6, 4, true},
		{"vertical tab does not break", "aaaa\vbbbbbbb", 6, 0, false},
		{"form feed does not break", "aaaa\fbbbbbbb", 6, 0, false},
		{"next line does not break", "aaaa\u0085bbbbbbb", 6, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(tt.line, tt.width)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLocateFirstSegmentOverflowsForLongWord(t *testing.T) {
	line := "superlongword next"
	idx, ok := Locate(line, 5)

	assert.True(t, ok)
	assert.Greater(t, idx, 5, "a word longer than the width is not cut")
	assert.Equal(t, "superlongword", line[:idx])
}

func TestIsWhitespace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\u00a0', '\u180e', '\u2000', '\u2007', '\u200b', '\u202f', '\u205f', '\u3000', '\ufeff'} {
		assert.True(t, isWhitespace(r), "%U", r)
	}
	for _, r := range []rune{'\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029', '\u200c', 'a', '_'} {
		assert.False(t, isWhitespace(r), "%U", r)
	}
}
