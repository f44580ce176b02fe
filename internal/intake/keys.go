package intake

import (
	"fmt"
	"strings"
	"time"
)

// ObjectKey derives the storage key for an uploaded file:
// {bucket}/public/{sanitized-filename}_{unix-timestamp}. The timestamp keeps
// same-named uploads from colliding.
func ObjectKey(bucket, filename string, ts time.Time) string {
	return fmt.Sprintf("%s/public/%s_%d", bucket, sanitizeFilename(filename), ts.Unix())
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
