package imagepipeline

import "strings"

// diagramKeywords are the recognized diagram-language openers checked by
// the layered extractor (spec §4.4 step 2).
var diagramKeywords = []string{
	"flowchart", "graph", "sequencediagram", "classdiagram", "statediagram",
	"erdiagram", "journey", "gantt", "pie", "gitgraph",
}

// fenceLanguages are the fence-label tokens recognized as "this fenced
// block is diagram source" (spec §4.4 step 2a).
var fenceLanguages = []string{"mermaid", "plantuml", "dot", "graphviz"}

// extractDiagramSource implements spec §4.4's layered parser: a fenced
// block labeled with a diagram language, else an unlabeled fenced block
// whose body opens with a recognized keyword, else raw text opening with a
// recognized keyword, else none of the above — in which case it returns
// ("", false), a legitimate outcome (no diagram to render), not an error.
func extractDiagramSource(text string) (string, bool) {
	if body, ok := labeledFenceBody(text); ok {
		return strings.TrimSpace(body), true
	}
	if body, ok := unlabeledFenceBody(text); ok {
		if startsWithKeyword(body) {
			return strings.TrimSpace(body), true
		}
	}
	trimmed := strings.TrimSpace(text)
	if startsWithKeyword(trimmed) {
		return trimmed, true
	}
	return "", false
}

func labeledFenceBody(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
		if lang == "" || !containsFold(fenceLanguages, lang) {
			continue
		}
		if body, ok := fenceBodyFrom(lines, i); ok {
			return body, true
		}
	}
	return "", false
}

func unlabeledFenceBody(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "```" {
			continue
		}
		if body, ok := fenceBodyFrom(lines, i); ok {
			return body, true
		}
	}
	return "", false
}

// fenceBodyFrom returns the body of the fence opening at lines[start], if a
// closing fence exists later in the text.
func fenceBodyFrom(lines []string, start int) (string, bool) {
	for j := start + 1; j < len(lines); j++ {
		if strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
			return strings.Join(lines[start+1:j], "\n"), true
		}
	}
	return "", false
}

func startsWithKeyword(s string) bool {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for _, kw := range diagramKeywords {
		if strings.HasPrefix(lowered, kw) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
