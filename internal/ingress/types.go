// Package ingress implements the companion's device ingress dispatcher
// (spec component C1): the POST /kobo-ask handler that authenticates a
// Kobo device, produces a fast short explanation, and schedules the
// background enrichment turn. Grounded on the teacher's pkg/api route
// registration shape (kevingil-blog's Register(app) blueprint pattern,
// the pack's only Fiber user) for the HTTP layer, and on the teacher's own
// request-validation style for payload checks.
package ingress

// RequestContext mirrors the optional book/author/chapter/device metadata
// carried on a HighlightRequest.
type RequestContext struct {
	Book     string `json:"book"`
	Author   string `json:"author"`
	Chapter  string `json:"chapter"`
	DeviceID string `json:"device_id"`
}

// HighlightRequest is the POST /kobo-ask request body.
type HighlightRequest struct {
	Mode    string        `json:"mode"`
	Text    string        `json:"text"`
	Context RequestContext `json:"context"`
}

// fallbackReply is returned with HTTP 200 when the short-form generator
// fails, per spec §4.1's failure semantics — the device must always see
// something.
const fallbackReply = "The reading companion is temporarily unavailable."
