package textgen

import (
	"context"
	"strings"
	"time"
)

// retryBackoff is the fixed delay before a single retry of a transient
// provider failure, per spec §4.2's failure semantics.
const retryBackoff = 500 * time.Millisecond

// retryModel decorates a chatModel with a single retry on transient errors,
// grounded on the teacher's Client.IsTransientError check in
// pkg/llm/openailm/client.go, generalized across providers instead of
// living on one client type.
type retryModel struct {
	inner chatModel
}

func withRetry(m chatModel) chatModel {
	return &retryModel{inner: m}
}

func (r *retryModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, err := r.inner.complete(ctx, systemPrompt, userPrompt)
	if err == nil || !isTransient(err) {
		return out, err
	}
	if !sleepBackoff(ctx) {
		return out, err
	}
	return r.inner.complete(ctx, systemPrompt, userPrompt)
}

func (r *retryModel) completeVision(ctx context.Context, systemPrompt, question string, imageBytes []byte, mimeType string) (string, error) {
	out, err := r.inner.completeVision(ctx, systemPrompt, question, imageBytes, mimeType)
	if err == nil || !isTransient(err) {
		return out, err
	}
	if !sleepBackoff(ctx) {
		return out, err
	}
	return r.inner.completeVision(ctx, systemPrompt, question, imageBytes, mimeType)
}

// sleepBackoff waits out retryBackoff or returns false if ctx is done first.
func sleepBackoff(ctx context.Context) bool {
	t := time.NewTimer(retryBackoff)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// isTransient classifies an error as worth retrying once, matching the
// substring heuristic the teacher's OpenAI client uses rather than typed
// provider-specific error values — the three SDKs in play here each surface
// transport failures differently.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"context deadline exceeded", "connection refused", "timeout", "eof", "reset by peer"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
