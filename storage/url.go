package storage

import "strings"

// ExtractPublicID recovers the storage key from a Cloudinary delivery URL:
// the path after the "upload" segment, minus an optional version segment
// (v12345) and the file extension. Returns "" when the URL does not look
// like a Cloudinary delivery URL.
func ExtractPublicID(url string) string {
	parts := strings.Split(url, "/")

	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	start := uploadIndex + 1
	if isVersionSegment(parts[start]) && start+1 < len(parts) {
		start++
	}

	publicID := strings.Join(parts[start:], "/")
	if dot := strings.LastIndex(publicID, "."); dot > -1 {
		publicID = publicID[:dot]
	}
	return publicID
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
