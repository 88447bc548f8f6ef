package ingress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeHighlightCard_IncludesBookAuthorChapter(t *testing.T) {
	card := composeHighlightCard(HighlightRequest{
		Text: "a passage",
		Context: RequestContext{Book: "Dune", Author: "Frank Herbert", Chapter: "Chapter 3"},
	})
	assert.Contains(t, card, "Dune")
	assert.Contains(t, card, "Chapter 3")
	assert.Contains(t, card, "Frank Herbert")
	assert.Contains(t, card, "a passage")
}

func TestComposeHighlightCard_OmitsMissingFields(t *testing.T) {
	card := composeHighlightCard(HighlightRequest{Text: "a passage"})
	assert.Contains(t, card, "a passage")
	assert.NotContains(t, card, "by \n")
}
