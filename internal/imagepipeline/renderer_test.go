package imagepipeline

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EncodesSourceURLSafeWithoutPadding(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	source := "flowchart TD\n  A --> B\n  B --> C"
	r := newRenderer(srv.URL)
	img := r.fetch(t.Context(), source)
	require.NotNil(t, img)

	encoded := gotPath[1:] // strip leading slash
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "=")

	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, source, string(decoded))
}

func TestRenderer_NonOKStatus_ReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	r := newRenderer(srv.URL)
	img := r.fetch(t.Context(), "flowchart TD")
	assert.Nil(t, img)
}

func TestRenderer_EmptyBody_ReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := newRenderer(srv.URL)
	img := r.fetch(t.Context(), "flowchart TD")
	assert.Nil(t, img)
}
