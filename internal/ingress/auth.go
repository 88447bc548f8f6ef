package ingress

import "crypto/subtle"

// checkAPIKey performs a constant-time comparison against the configured
// device secret, per spec §4.1/§4.8 — a non-constant-time compare would
// leak key-prefix information through response timing.
func checkAPIKey(provided, expected string) bool {
	if provided == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}
