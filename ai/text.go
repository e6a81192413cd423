package ai

// TruncateText caps text at maxChars characters, cutting at a rune
// boundary so multi-byte characters are never split. A non-positive
// budget returns the text unchanged.
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}
