package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Local stores files on the local filesystem under a single uploads
// directory and serves them back via the /uploads static route.
type Local struct {
	dir    string
	logger *zap.Logger
}

func NewLocal(dir string, logger *zap.Logger) *Local {
	return &Local{dir: dir, logger: logger}
}

func (l *Local) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(l.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	l.logger.Debug("Stored file", zap.String("path", path))
	return "/uploads/" + key, nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.dir, key))
}
