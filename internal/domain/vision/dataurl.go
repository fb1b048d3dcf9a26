package vision

import "strings"

// SplitDataURL removes an embedded data-URL prefix from a base64 image
// payload and recovers the declared content type, defaulting to JPEG. Plain
// base64 input passes through unchanged.
func SplitDataURL(s string) (payload, contentType string) {
	contentType = "image/jpeg"
	if !strings.HasPrefix(s, "data:") {
		return s, contentType
	}
	comma := strings.Index(s, ",")
	if comma < 0 {
		return s, contentType
	}
	header := s[len("data:"):comma]
	if semi := strings.Index(header, ";"); semi >= 0 {
		header = header[:semi]
	}
	if header != "" {
		contentType = header
	}
	return s[comma+1:], contentType
}
