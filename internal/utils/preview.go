package utils

import (
	"unicode"
	"unicode/utf8"
)

const (
	// PreviewLimit bounds how many leading bytes are inspected.
	PreviewLimit = 200

	// PreviewPlaceholder is returned for content that does not look like text.
	PreviewPlaceholder = "[Preview not available]"
)

// Preview returns the first PreviewLimit bytes of content decoded as UTF-8
// text, or PreviewPlaceholder when the bytes do not decode or contain a
// control character other than CR, LF or TAB. This is a cheap
// binary-vs-text guess, not a MIME sniffer.
func Preview(content []byte) string {
	snippet := content
	truncated := false
	if len(snippet) > PreviewLimit {
		snippet = snippet[:PreviewLimit]
		truncated = true
	}

	// The cut can land mid-rune; drop the partial trailing rune so a long
	// valid text file is not mistaken for binary.
	if truncated {
		for len(snippet) > 0 && !utf8.Valid(snippet) {
			last := snippet[len(snippet)-1]
			if last < utf8.RuneSelf {
				break
			}
			snippet = snippet[:len(snippet)-1]
			if last >= 0xC0 {
				// Reached the leading byte of the partial rune.
				break
			}
		}
	}

	if !utf8.Valid(snippet) {
		return PreviewPlaceholder
	}

	for _, r := range string(snippet) {
		if unicode.IsControl(r) && r != '\r' && r != '\n' && r != '\t' {
			return PreviewPlaceholder
		}
	}

	return string(snippet)
}
