package measure

import "strings"

// Measurer is the text measurement capability injected into fit validators.
//
// Implementations must be deterministic: the same inputs always produce the
// same outputs. Widths and heights are in pixels.
type Measurer interface {
	// TextHeight returns the rendered height of content word-wrapped at
	// widthPx and fontSizePx, including every line box.
	TextHeight(content string, widthPx, fontSizePx float64) float64

	// LineWidth returns the advance width of a single unwrapped line.
	LineWidth(line string, fontSizePx float64) float64

	// LineHeight returns the height of one line box at fontSizePx.
	LineHeight(fontSizePx float64) float64
}

// Wrap splits content into rendered lines at the given width and font size
// using greedy word wrap. Explicit newlines force line breaks. A word wider
// than the line is broken between runes so no line ever exceeds widthPx
// (single runes wider than the line overflow rather than disappear).
func Wrap(m Measurer, content string, widthPx, fontSizePx float64) []string {
	var lines []string
	for _, para := range strings.Split(content, "\n") {
		lines = append(lines, wrapParagraph(m, para, widthPx, fontSizePx)...)
	}
	return lines
}

func wrapParagraph(m Measurer, para string, widthPx, fontSizePx float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.LineWidth(candidate, fontSizePx) <= widthPx {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if m.LineWidth(word, fontSizePx) <= widthPx {
			current = word
			continue
		}
		// Word alone exceeds the line: break it between runes.
		broken, rest := breakWord(m, word, widthPx, fontSizePx)
		lines = append(lines, broken...)
		current = rest
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits an overlong word into full lines plus a trailing
// fragment that still has room for more words.
func breakWord(m Measurer, word string, widthPx, fontSizePx float64) (full []string, rest string) {
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && m.LineWidth(string(runes[start:end+1]), fontSizePx) <= widthPx {
			end++
		}
		if end == len(runes) {
			return full, string(runes[start:])
		}
		full = append(full, string(runes[start:end]))
		start = end
	}
	return full, ""
}

// wrappedHeight is the shared TextHeight implementation: line count times
// line box height.
func wrappedHeight(m Measurer, content string, widthPx, fontSizePx float64) float64 {
	lines := Wrap(m, content, widthPx, fontSizePx)
	return float64(len(lines)) * m.LineHeight(fontSizePx)
}
