package ingress

import (
	"fmt"

	"companion/internal/companionerrors"
)

// maxHighlightTextBytes is spec §3's "bounded to ~8 KiB" limit on the
// highlighted passage, enforced as the boundary invariant in spec §8: a
// payload of exactly this many bytes is accepted, one byte larger is not.
const maxHighlightTextBytes = 8 * 1024

// validate enforces the POST /kobo-ask payload shape (spec §6): mode must
// be "explain", text must be non-empty, and text must not exceed the
// highlight size bound.
func validate(req HighlightRequest) error {
	if req.Mode != "explain" {
		return fmt.Errorf("%w: unsupported mode %q", companionerrors.ErrValidation, req.Mode)
	}
	if req.Text == "" {
		return fmt.Errorf("%w: text is required", companionerrors.ErrValidation)
	}
	if len(req.Text) > maxHighlightTextBytes {
		return fmt.Errorf("%w: text exceeds %d bytes", companionerrors.ErrValidation, maxHighlightTextBytes)
	}
	return nil
}
