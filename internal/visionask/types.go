// Package visionask implements the companion's image-understanding path
// (spec component C7): authenticate, validate an uploaded image, ask C2's
// vision-capable generator about it, and optionally hand the answer off to
// the messaging gateway in the background. No pack example implements a
// multipart image-question endpoint, so this package is composed fresh in
// the manner of internal/ingress (its sibling HTTP surface), reusing the
// same auth/scheduling primitives rather than inventing new ones.
package visionask

// maxImageBytes is the spec's 20 MiB upper bound on an uploaded image.
const maxImageBytes = 20 * 1024 * 1024

// defaultQuestion is asked of the vision model when the caller supplies no
// question of their own.
const defaultQuestion = "What is shown in this image?"

// Answer is the POST /ask-with-image response body (spec.md §6:
// {"question","answer","image_filename","image_size_bytes","sent_to_channel"}).
type Answer struct {
	Question       string `json:"question"`
	AnswerText     string `json:"answer"`
	ImageFilename  string `json:"image_filename"`
	ImageSizeBytes int64  `json:"image_size_bytes"`
	SentToChannel  bool   `json:"sent_to_channel"`
}
