package config

// Secret wraps a sensitive string value (API keys, bot tokens) so that it
// can never be accidentally rendered by a default string conversion,
// %v/%s formatting, JSON marshaling, or slog attribute logging. This
// mirrors the teacher's custom MarshalJSON approach for binary image
// payloads (pkg/llm/messages.go's ImageSource), generalized here from
// "don't serialize raw bytes" to "don't leak secrets".
type Secret string

const redacted = "[REDACTED]"

// String implements fmt.Stringer. It is intentionally lossy.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer, covering %#v formatting too.
func (s Secret) GoString() string {
	return redacted
}

// MarshalJSON ensures secrets never leak into JSON-serialized configs or
// logs that happen to marshal a struct containing one.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// UnmarshalJSON accepts a plain JSON string as the raw secret value.
func (s *Secret) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		*s = ""
		return nil
	}
	// Strip surrounding quotes; config secrets never contain escaped JSON.
	*s = Secret(data[1 : len(data)-1])
	return nil
}

// LogValue returns the redaction marker. It returns a string rather than a
// slog.Value, so Secret does not satisfy slog.LogValuer; slog output of a
// Secret is redacted through String and MarshalJSON instead.
func (s Secret) LogValue() string {
	return redacted
}

// Reveal is the single explicit accessor for the underlying value. Every
// call site that needs the raw secret (building an Authorization header,
// comparing against an incoming request) must name this method, making
// secret use grep-able and review-able.
func (s Secret) Reveal() string {
	return string(s)
}

// Empty reports whether no secret value was ever set.
func (s Secret) Empty() bool {
	return s == ""
}
