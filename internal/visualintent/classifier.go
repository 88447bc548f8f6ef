// Package visualintent implements the companion's visual-intent classifier
// (spec component C3): a deterministic, side-effect-free keyword detector
// that decides whether a user utterance is asking for a diagram. It has no
// network dependency and no configuration — a leaf package, grounded on
// the teacher's preference for small single-purpose packages (e.g.
// pkg/utils) kept free of cross-package coupling.
package visualintent

import (
	"strings"
	"unicode"
)

// markers is the fixed vocabulary of intent-bearing words and phrases.
// Multi-word entries are matched as contiguous phrases; single words are
// matched as whole tokens so "drawer" does not match "draw".
var markers = []string{
	"diagram", "diagrammatic", "diagrammatically",
	"visualize", "visualise", "visual", "visually",
	"draw", "drawing", "sketch",
	"illustrate", "illustration",
	"chart", "graph", "flowchart",
	"picture", "image",
	"show me", "explain with",
}

// WantsVisual reports whether text expresses an intent for a diagram to
// accompany the reply. It is pure and total: empty input returns false and
// it never panics or performs I/O, so it is safe to call from both the
// prompt-construction site (C2) and the gating site (C4/C6) with the
// guarantee that both observe the same decision for the same text.
func WantsVisual(text string) bool {
	if text == "" {
		return false
	}

	normalized := strings.ToLower(text)
	tokens := tokenize(normalized)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}
	joined := " " + strings.Join(tokens, " ") + " "

	for _, marker := range markers {
		if strings.Contains(marker, " ") {
			if strings.Contains(joined, " "+marker+" ") {
				return true
			}
			continue
		}
		if tokenSet[marker] {
			return true
		}
	}
	return false
}

// tokenize splits s into lowercase alphanumeric words, discarding
// punctuation, so that "diagram." and "diagram," still match the "diagram"
// marker and a marker phrase's words line up against single spaces
// regardless of the original whitespace/punctuation.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
