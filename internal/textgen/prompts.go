package textgen

import "strings"

const (
	noDiagramInstruction = "Do not render a diagram in text; a separate image will be produced."
	shortSystemPrompt    = "You are a concise reading companion. Reply in 1-2 sentences, under 200 characters. " +
		"Never use lists, headings, or markdown formatting. Plain prose only."
	longSystemPrompt = "You are a reading companion producing a rich, multi-paragraph analysis suitable for a " +
		"chat channel. Never use triple-backtick code fences. Never draw diagrams using box-drawing characters, " +
		"dashes-and-pipes, or ASCII arrows. If a diagram would help, say so in prose instead of attempting to " +
		"draw one."
	followUpSystemPrompt = "You are a reading companion continuing a prior discussion. Answer the follow-up " +
		"question using the prior message as context."
	generalSystemPrompt = "You are a reading companion answering a free-standing question."
	visionSystemPrompt  = "You are a reading companion answering a question about an attached image."
)

// contextHeader renders the optional book/author/chapter header included
// when present, per spec's "Prompt construction rules".
func contextHeader(rc RequestContext) string {
	var parts []string
	if rc.Book != "" {
		parts = append(parts, "Book: "+rc.Book)
	}
	if rc.Author != "" {
		parts = append(parts, "Author: "+rc.Author)
	}
	if rc.Chapter != "" {
		parts = append(parts, "Chapter: "+rc.Chapter)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " | ") + "\n\n"
}

func shortPrompt(text string, rc RequestContext) (string, string) {
	return shortSystemPrompt, contextHeader(rc) + "Selected passage:\n" + text
}

func longPrompt(text string, rc RequestContext) (string, string) {
	return longSystemPrompt, contextHeader(rc) + "Selected passage:\n" + text
}

func followUpPrompt(question, priorContextMessage string, wantsVisual bool) (string, string) {
	sys := followUpSystemPrompt
	if wantsVisual {
		sys += " " + noDiagramInstruction
	}
	user := "Prior message:\n" + priorContextMessage + "\n\nFollow-up question:\n" + question
	return sys, user
}

func generalPrompt(question string, wantsVisual bool) (string, string) {
	sys := generalSystemPrompt
	if wantsVisual {
		sys += " " + noDiagramInstruction
	}
	return sys, question
}

func visionPrompt(question string) (string, string) {
	if question == "" {
		question = "Describe and explain this image."
	}
	return visionSystemPrompt, question
}
