package imagepipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirect struct {
	img []byte
	err error
}

func (f *fakeDirect) generate(ctx context.Context, userContext, priorText string) ([]byte, error) {
	return f.img, f.err
}

type fakeFallback struct {
	img []byte
}

func (f *fakeFallback) generate(ctx context.Context, userContext, priorText string) []byte {
	return f.img
}

func TestPipeline_NoStrategiesConfigured_ReturnsNilNil(t *testing.T) {
	p := &pipeline{}
	img, err := p.TryGenerate(context.Background(), "ctx", "text")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestPipeline_DirectStrategySucceeds_SkipsFallback(t *testing.T) {
	p := &pipeline{
		direct:   &fakeDirect{img: []byte("png-bytes")},
		fallback: &fakeFallback{img: []byte("should not be used")},
	}
	img, err := p.TryGenerate(context.Background(), "ctx", "text")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), img)
}

func TestPipeline_DirectReturnsNone_FallsBackToDiagramStrategy(t *testing.T) {
	p := &pipeline{
		direct:   &fakeDirect{img: nil},
		fallback: &fakeFallback{img: []byte("rendered")},
	}
	img, err := p.TryGenerate(context.Background(), "ctx", "text")
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), img)
}

func TestPipeline_DirectErrors_FallsBackWithoutPropagatingError(t *testing.T) {
	p := &pipeline{
		direct:   &fakeDirect{err: errors.New("transient failure")},
		fallback: &fakeFallback{img: []byte("rendered")},
	}
	img, err := p.TryGenerate(context.Background(), "ctx", "text")
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), img)
}

func TestPipeline_BothStrategiesProduceNothing_ReturnsNilNil(t *testing.T) {
	p := &pipeline{
		direct:   &fakeDirect{img: nil},
		fallback: &fakeFallback{img: nil},
	}
	img, err := p.TryGenerate(context.Background(), "ctx", "text")
	require.NoError(t, err)
	assert.Nil(t, img)
}
