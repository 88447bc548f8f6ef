package ingress

import "strings"

// composeHighlightCard renders the header message that opens an enrichment
// thread in the messaging channel, so the long explanation (and any image)
// that follow are visibly grouped under the original highlight.
func composeHighlightCard(req HighlightRequest) string {
	var b strings.Builder
	b.WriteString("📖 ")
	if req.Context.Book != "" {
		b.WriteString(req.Context.Book)
		if req.Context.Chapter != "" {
			b.WriteString(" — " + req.Context.Chapter)
		}
		b.WriteString("\n")
	}
	if req.Context.Author != "" {
		b.WriteString("by " + req.Context.Author + "\n")
	}
	b.WriteString("\n\"" + req.Text + "\"")
	return b.String()
}
