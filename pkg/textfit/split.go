package textfit

import "regexp"

// tokenRe matches one atomic wrap unit: a single CJK code point, a run
// of ASCII digits, or a Latin-letter run with an optional apostrophe
// and lowercase tail (keeps contractions like "don't" intact).
var tokenRe = regexp.MustCompile(`[\x{4e00}-\x{faff}]|[0-9]+|[a-zA-Z]+'*[a-z]*`)

// Split tokenizes mixed-script text into atomic wrap units. The wrap
// search uses the longest token to bound its wrap width so no unit is
// ever broken mid-word.
//
//	Split("abc123你好") // ["abc", "123", "你", "好"]
func Split(text string) []string {
	return tokenRe.FindAllString(text, -1)
}
