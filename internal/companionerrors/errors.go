// Package companionerrors defines the sentinel error taxonomy shared by every
// component of the AI companion. Handlers type-switch (via errors.Is/As) on
// these instead of matching on error message text.
package companionerrors

import "errors"

// Sentinel errors for the propagation policy described in the companion's
// error handling design: each carries a fixed HTTP/propagation meaning that
// every caller can rely on without parsing strings.
var (
	// ErrAuth is returned when a device or API request fails authentication.
	// Ingress handlers must map this to HTTP 401 and never log the secret.
	ErrAuth = errors.New("companion: authentication failed")

	// ErrValidation is returned when a request payload is malformed or
	// violates a size/shape constraint. Ingress handlers map this to 400.
	ErrValidation = errors.New("companion: validation failed")

	// ErrGeneratorUnavailable is returned when no text/vision model is
	// configured or the configured provider cannot be reached at all.
	ErrGeneratorUnavailable = errors.New("companion: text generator unavailable")

	// ErrGeneration is returned when a model call completes but yields no
	// usable output after the one permitted retry.
	ErrGeneration = errors.New("companion: generation failed")

	// ErrRenderer is returned when the external diagram renderer responds
	// with a non-200 status or times out. Callers resolve this to "no image"
	// rather than propagating it further.
	ErrRenderer = errors.New("companion: diagram renderer failed")

	// ErrMessaging is returned when a send to the messaging gateway fails.
	// It is logged and never propagated to the device-facing response.
	ErrMessaging = errors.New("companion: messaging send failed")

	// ErrSchedulerFull is returned when the background task scheduler is at
	// its concurrency cap and a new task cannot be admitted.
	ErrSchedulerFull = errors.New("companion: scheduler at capacity")
)
