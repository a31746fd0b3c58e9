package bot

import (
	"strings"
	"unicode/utf8"
)

// splitMessage breaks text into chunks of at most limit characters, cutting
// at the longest boundary that fits: paragraph break, then sentence end, then
// word break, then a hard cut as the last resort.
func splitMessage(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := boundaryCut(text, limit)
		chunk := strings.TrimSpace(text[:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func boundaryCut(text string, limit int) int {
	window := text[:limit]

	if idx := strings.LastIndex(window, "\n\n"); idx > 0 {
		return idx
	}
	if idx := lastSentenceEnd(window); idx > 0 {
		return idx
	}
	if idx := strings.LastIndexAny(window, " \n"); idx > 0 {
		return idx
	}
	return lastRuneBoundary(text, limit)
}

func lastSentenceEnd(s string) int {
	best := -1
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		switch r {
		case '.', '!', '?':
			if next < len(s) && (s[next] == ' ' || s[next] == '\n') {
				best = next
			}
		case '。', '！', '？':
			best = next
		}
	}
	return best
}

// lastRuneBoundary backs a byte offset up to the start of the rune it falls
// inside, so a hard cut never splits a multibyte character.
func lastRuneBoundary(s string, idx int) int {
	cut := idx
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return idx
	}
	return cut
}
