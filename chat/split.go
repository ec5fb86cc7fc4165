// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chat

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLen is Discord's limit on message content, in characters.
const MaxMessageLen = 2000

// SplitMessage breaks text into chunks of at most limit characters, cutting
// at line breaks where possible. A single line longer than limit is cut
// mid-line.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lineLen := utf8.RuneCountInString(line)

		sep := 0
		if currentLen > 0 {
			sep = 1
		}
		if currentLen+sep+lineLen <= limit {
			if sep == 1 {
				current.WriteByte('\n')
			}
			current.WriteString(line)
			currentLen += sep + lineLen
			continue
		}

		flush()
		for lineLen > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			lineLen -= limit
		}
		current.WriteString(line)
		currentLen = lineLen
	}
	flush()

	return chunks
}
