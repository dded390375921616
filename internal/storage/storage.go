package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Storage is the narrow contract the services depend on: write a file under a
// key, remove it again. Save returns the locator recorded in the database.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
}

// BuildKey prefixes the sanitized filename with a nanosecond timestamp so
// repeated uploads of the same file never collide.
func BuildKey(filename string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), SanitizeFilename(filename))
}

// SanitizeFilename strips directories and replaces anything outside a safe
// character set so the name can be used as a path segment or object key.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := b.String()
	if strings.Trim(sanitized, "._") == "" {
		return "file"
	}
	return sanitized
}
