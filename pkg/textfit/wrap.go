package textfit

import (
	"strings"
	"unicode/utf8"
)

// Wrap performs a greedy word-wrap of text at the given width in
// runes. Words are whitespace-separated; a word longer than the width
// is hard-broken into width-sized chunks (unspaced scripts wrap this
// way, one rune at a time when width is 1).
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		switch {
		case word == "":
		case cur == "":
			cur = word
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
