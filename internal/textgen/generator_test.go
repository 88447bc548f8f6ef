package textgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion/internal/companionerrors"
)

type fakeModel struct {
	text       string
	err        error
	calls      int
	failOnce   bool
	lastSystem string
	lastUser   string
}

func (f *fakeModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem, f.lastUser = systemPrompt, userPrompt
	if f.failOnce && f.calls == 1 {
		return "", errors.New("connection refused")
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeModel) completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error) {
	return f.complete(ctx, systemPrompt, question)
}

func TestGenerator_ShortExplain_TruncatesAndSanitizes(t *testing.T) {
	fm := &fakeModel{text: "# Heading\nThis is the short explanation."}
	g := New(fm)

	out, err := g.ShortExplain(context.Background(), "a passage", RequestContext{Book: "Dune"})
	require.NoError(t, err)
	assert.NotContains(t, out, "#")
	assert.Contains(t, fm.lastUser, "Book: Dune")
}

func TestGenerator_LongExplain_StripsDiagrams(t *testing.T) {
	fm := &fakeModel{text: "Prose.\n┌───┐\n│box│\n└───┘\nMore prose."}
	g := New(fm)

	out, err := g.LongExplain(context.Background(), "a passage", RequestContext{})
	require.NoError(t, err)
	assert.NotContains(t, out, "┌")
}

func TestGenerator_FollowUp_PassesWantsVisualIntoPrompt(t *testing.T) {
	fm := &fakeModel{text: "An answer."}
	g := New(fm)

	_, err := g.FollowUp(context.Background(), "what next?", "prior message body", true)
	require.NoError(t, err)
	assert.Contains(t, fm.lastSystem, "separate image will be produced")
}

func TestGenerator_PropagatesPersistentFailureAsGenerationError(t *testing.T) {
	fm := &fakeModel{err: errors.New("invalid request")}
	g := New(fm)

	_, err := g.GeneralAnswer(context.Background(), "why?", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, companionerrors.ErrGeneration)
}

func TestGenerator_RetriesOnceOnTransientFailure(t *testing.T) {
	fm := &fakeModel{text: "recovered answer", failOnce: true}
	g := New(fm)

	out, err := g.GeneralAnswer(context.Background(), "why?", false)
	require.NoError(t, err)
	assert.Equal(t, "recovered answer", out)
	assert.Equal(t, 2, fm.calls)
}

func TestGenerator_VisionAnswer(t *testing.T) {
	fm := &fakeModel{text: "it shows a diagram"}
	g := New(fm)

	out, err := g.VisionAnswer(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg", "what is this?")
	require.NoError(t, err)
	assert.Equal(t, "it shows a diagram", out)
}
