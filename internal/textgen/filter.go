package textgen

import (
	"strings"
	"unicode"
)

// maxFenceLines bounds how long a fenced block may run before it is treated
// as a would-be diagram and dropped outright, per spec §4.2's post-filter
// invariant (the long-form prompt forbids fences; this is the backstop for
// when a model ignores the instruction).
const maxFenceLines = 8

// shortMaxRunes is the hard length cap for short-form replies (spec §4.2).
const shortMaxRunes = 200

// stripAsciiArt removes fenced code blocks longer than maxFenceLines and any
// line or block made predominantly of non-alphanumeric "drawing" runes (box
// drawing characters, dashes-and-pipes, ASCII arrows), regardless of what
// the prompt asked the model to avoid.
func stripAsciiArt(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			j := i + 1
			for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
				j++
			}
			closed := j < len(lines)
			body := lines[i+1 : j]

			if len(body) > maxFenceLines || isDrawingBlock(body) {
				if closed {
					i = j + 1
				} else {
					i = j
				}
				continue
			}

			out = append(out, line)
			out = append(out, body...)
			if closed {
				out = append(out, lines[j])
				i = j + 1
			} else {
				i = j
			}
			continue
		}

		if isDrawingLine(line) {
			i++
			continue
		}
		out = append(out, line)
		i++
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// isDrawingLine reports whether a non-blank line is dominated by
// non-alphanumeric drawing runes rather than prose.
func isDrawingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	drawing, total := runeTally(trimmed)
	if total == 0 {
		return false
	}
	return float64(drawing)/float64(total) > 0.5
}

// isDrawingBlock reports whether a fenced block's body is itself a diagram,
// judged by the fraction of its non-blank lines that are drawing lines.
func isDrawingBlock(lines []string) bool {
	nonBlank := 0
	drawingLines := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		nonBlank++
		if isDrawingLine(l) {
			drawingLines++
		}
	}
	if nonBlank == 0 {
		return false
	}
	return float64(drawingLines)/float64(nonBlank) > 0.5
}

// runeTally counts drawing runes vs. all non-space runes in s.
func runeTally(s string) (drawing, total int) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isDrawingRune(r) {
			drawing++
		}
	}
	return drawing, total
}

func isDrawingRune(r rune) bool {
	if r >= 0x2500 && r <= 0x257F { // Unicode box drawing block
		return true
	}
	if r >= 0x2190 && r <= 0x21FF { // arrows block
		return true
	}
	switch r {
	case '-', '|', '+', '/', '\\', '_', '=', '>', '<', '~', '*', '#', '`':
		return true
	}
	return false
}

// sanitizeShort strips markdown list/heading markers, collapses the reply
// to a single line, and truncates to shortMaxRunes without splitting a rune
// or leaving a dangling partial word where a space boundary is available.
func sanitizeShort(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "#")
		l = strings.TrimSpace(l)
		if len(l) > 0 && (l[0] == '-' || l[0] == '*') {
			l = strings.TrimSpace(l[1:])
		}
		if l == "" {
			continue
		}
		cleaned = append(cleaned, l)
	}
	joined := strings.Join(cleaned, " ")
	joined = strings.TrimSpace(joined)

	runes := []rune(joined)
	if len(runes) <= shortMaxRunes {
		return joined
	}

	truncated := runes[:shortMaxRunes]
	if idx := strings.LastIndexAny(string(truncated), " \t"); idx > 0 {
		truncated = []rune(string(truncated)[:idx])
	}
	return strings.TrimSpace(string(truncated))
}
