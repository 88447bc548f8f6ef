package imagepipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDiagramSource_LabeledFence(t *testing.T) {
	in := "Here:\n```mermaid\nflowchart TD\n  A --> B\n```\nDone."
	src, ok := extractDiagramSource(in)
	assert.True(t, ok)
	assert.Contains(t, src, "flowchart TD")
}

func TestExtractDiagramSource_UnlabeledFenceWithKeyword(t *testing.T) {
	in := "```\nsequenceDiagram\n  Alice->>Bob: hi\n```"
	src, ok := extractDiagramSource(in)
	assert.True(t, ok)
	assert.Contains(t, src, "sequenceDiagram")
}

func TestExtractDiagramSource_UnlabeledFenceWithoutKeyword(t *testing.T) {
	in := "```\njust some prose in a fence\n```"
	_, ok := extractDiagramSource(in)
	assert.False(t, ok)
}

func TestExtractDiagramSource_BareKeywordPrefix(t *testing.T) {
	in := "flowchart TD\n  A --> B"
	src, ok := extractDiagramSource(in)
	assert.True(t, ok)
	assert.Equal(t, in, src)
}

func TestExtractDiagramSource_NoMatchReturnsFalse(t *testing.T) {
	_, ok := extractDiagramSource("This is just an explanation with no diagram markup.")
	assert.False(t, ok)
}

func TestExtractDiagramSource_EmptyText(t *testing.T) {
	_, ok := extractDiagramSource("")
	assert.False(t, ok)
}
