package messaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText_ShortTextIsSingleChunk(t *testing.T) {
	chunks := chunkText("hello", 4096)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestChunkText_SplitsAtRuneBoundaries(t *testing.T) {
	text := strings.Repeat("a", 10)
	chunks := chunkText(text, 4)
	assert.Equal(t, []string{"aaaa", "aaaa", "aa"}, chunks)
}

func TestChunkText_ReassemblesToOriginal(t *testing.T) {
	text := strings.Repeat("x", 9000)
	chunks := chunkText(text, 4096)
	var rebuilt strings.Builder
	for _, c := range chunks {
		rebuilt.WriteString(c)
	}
	assert.Equal(t, text, rebuilt.String())
}
