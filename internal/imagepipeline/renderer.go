package imagepipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// rendererFetchTimeout bounds the external renderer HTTP call (spec §4.4
// step 4). No pack example implements a diagram-rendering service; this
// client is plain net/http, the same transport every HTTP caller in the
// pack eventually bottoms out on.
const rendererFetchTimeout = 15 * time.Second

// renderer fetches a rendered PNG for a diagram source from the external
// renderer configured for Strategy B.
type renderer struct {
	baseURL string
	client  *http.Client
}

func newRenderer(baseURL string) *renderer {
	return &renderer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: rendererFetchTimeout},
	}
}

// fetch encodes source as URL-safe base64 without padding and GETs
// <base>/<encoded>. Returns nil on any network error, non-200 status, or
// empty body — all of these resolve to "no image", per spec §4.4 step 5;
// no error is returned to the caller.
func (r *renderer) fetch(ctx context.Context, source string) []byte {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(source))
	url := fmt.Sprintf("%s/%s", r.baseURL, encoded)

	ctx, cancel := context.WithTimeout(ctx, rendererFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("diagram renderer request build failed", "error", err)
		return nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Warn("diagram renderer request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("diagram renderer response read failed", "error", err)
		return nil
	}

	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		preview := body
		if len(preview) > 200 {
			preview = preview[:200]
		}
		slog.Warn("diagram renderer returned no usable image", "status", resp.StatusCode, "body_preview", string(preview))
		return nil
	}

	return body
}
