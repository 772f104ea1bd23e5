package tui

import "unicode/utf8"

// estimateTokens returns an approximate token count.
// ASCII text runs ~4 chars per token; CJK runs closer to one token per character.
func estimateTokens(text string) int {
	ascii, wide := 0, 0
	for _, r := range text {
		if r < utf8.RuneSelf {
			ascii++
		} else {
			wide++
		}
	}
	return (ascii+3)/4 + wide
}
