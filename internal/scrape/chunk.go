package scrape

import "strings"

const (
	// MessageLimit is the per-fragment character budget, kept under
	// Telegram's 4096-character message cap with headroom for the footer.
	MessageLimit = 3500

	// minBoundary rejects cut boundaries closer than this to the window
	// start; cutting there would produce a tiny fragment.
	minBoundary = 200
)

// Split breaks text into ordered fragments of at most limit characters.
// Cuts prefer a double line break near the end of the window, then a single
// line break, and fall back to a hard cut at the limit so termination is
// guaranteed for any input shape. Fragments are trimmed and never empty;
// fragment order reconstructs the original document.
func Split(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	remaining := []rune(strings.TrimSpace(text))
	if len(remaining) == 0 {
		return nil
	}
	if len(remaining) <= limit {
		return []string{string(remaining)}
	}

	var fragments []string
	for len(remaining) > limit {
		window := remaining[:limit]
		cut := cutPoint(window)

		frag := strings.TrimSpace(string(remaining[:cut]))
		if frag != "" {
			fragments = append(fragments, frag)
		}
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}
	if len(remaining) > 0 {
		fragments = append(fragments, string(remaining))
	}
	return fragments
}

// cutPoint picks the cut position within the window: the last paragraph
// break, else the last line break, else the full window. Boundaries within
// minBoundary of the start are ignored.
func cutPoint(window []rune) int {
	if pos := lastBoundary(window, true); pos >= minBoundary {
		return pos
	}
	if pos := lastBoundary(window, false); pos >= minBoundary {
		return pos
	}
	return len(window)
}

// lastBoundary finds the last line break in the window, requiring a double
// break when paragraph is true. Returns -1 when no boundary exists.
func lastBoundary(window []rune, paragraph bool) int {
	for i := len(window) - 1; i > 0; i-- {
		if window[i] != '\n' {
			continue
		}
		if paragraph {
			if window[i-1] == '\n' {
				return i - 1
			}
			continue
		}
		return i
	}
	return -1
}
