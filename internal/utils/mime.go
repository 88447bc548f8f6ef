package utils

import (
	"mime"
	"net/http"
)

// DetectMimeAndExt sniffs a byte slice's MIME type and returns it along with
// its first registered file extension, defaulting to ("application/octet-stream",
// ".bin") when detection fails. Ported from the teacher's
// pkg/utils/mime.go (DetectMimeAndExt), trimmed to the byte-slice form the
// companion needs for inline image attachments (no on-disk files here).
func DetectMimeAndExt(data []byte) (string, string) {
	mimeType := "application/octet-stream"
	if len(data) > 0 {
		mimeType = http.DetectContentType(data)
	}
	return mimeType, mimeToExt(mimeType)
}

func mimeToExt(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}

// allowedImageMIMEs is the allowlist for C7's image-understanding ingress
// (spec §4.7: "MIME in {jpeg, png, gif, webp}").
var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageMIME reports whether mimeType is in the image-understanding
// path's allowlist.
func IsAllowedImageMIME(mimeType string) bool {
	return allowedImageMIMEs[mimeType]
}
