package lmfmt

import "fmt"

// govern applies the global character budget. When the text is over
// budget it is cut so that the kept prefix plus the footer is exactly
// maxChars long; the cut may fall mid-token. A budget too small to even
// hold the footer degrades to a bare cut. maxChars <= 0 means
// unbounded: the text passes through unmodified however large.
func govern(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	footer := fmt.Sprintf("\n[Truncated: output exceeded %d characters]", maxChars)
	if len(footer) >= maxChars {
		return text[:maxChars]
	}
	return text[:maxChars-len(footer)] + footer
}
