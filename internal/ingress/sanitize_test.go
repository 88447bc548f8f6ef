package ingress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDeviceReply_StripsControlCharacters(t *testing.T) {
	out := sanitizeDeviceReply("hello\x00world\x07!")
	assert.Equal(t, "helloworld!", out)
}

func TestSanitizeDeviceReply_CollapsesWhitespace(t *testing.T) {
	out := sanitizeDeviceReply("hello   \n\n  world")
	assert.Equal(t, "hello world", out)
}

func TestSanitizeDeviceReply_TruncatesAtWordBoundaryUnder200(t *testing.T) {
	out := sanitizeDeviceReply(strings.Repeat("word ", 60))
	assert.LessOrEqual(t, len([]rune(out)), deviceReplyMaxRunes)
	assert.False(t, strings.HasSuffix(out, "wor"))
}

func TestSanitizeDeviceReply_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "A short reply.", sanitizeDeviceReply("A short reply."))
}

func TestSanitizeDeviceReply_FoldsSmartPunctuationToASCII(t *testing.T) {
	out := sanitizeDeviceReply("it’s a twist—one you won’t expect “like that”…")
	assert.Equal(t, `it's a twist-one you won't expect "like that"...`, out)
}

func TestSanitizeDeviceReply_StripsRemainingNonASCII(t *testing.T) {
	out := sanitizeDeviceReply("café ☃ 日本語 plain")
	for _, r := range out {
		assert.LessOrEqual(t, r, rune(127))
	}
	assert.Equal(t, "caf plain", out)
}

func TestCheckAPIKey_MatchesExactly(t *testing.T) {
	assert.True(t, checkAPIKey("secret123", "secret123"))
}

func TestCheckAPIKey_RejectsMismatch(t *testing.T) {
	assert.False(t, checkAPIKey("wrong", "secret123"))
}

func TestCheckAPIKey_RejectsEmptyProvided(t *testing.T) {
	assert.False(t, checkAPIKey("", "secret123"))
}

func TestValidate_RejectsWrongMode(t *testing.T) {
	err := validate(HighlightRequest{Mode: "summarize", Text: "x"})
	assert.Error(t, err)
}

func TestValidate_RejectsEmptyText(t *testing.T) {
	err := validate(HighlightRequest{Mode: "explain", Text: ""})
	assert.Error(t, err)
}

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	err := validate(HighlightRequest{Mode: "explain", Text: "a passage"})
	assert.NoError(t, err)
}

func TestValidate_AcceptsTextAtMaxBound(t *testing.T) {
	err := validate(HighlightRequest{Mode: "explain", Text: strings.Repeat("a", maxHighlightTextBytes)})
	assert.NoError(t, err)
}

func TestValidate_RejectsTextOneByteOverMaxBound(t *testing.T) {
	err := validate(HighlightRequest{Mode: "explain", Text: strings.Repeat("a", maxHighlightTextBytes+1)})
	assert.Error(t, err)
}
