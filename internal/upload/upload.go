// Package upload pushes converted edge files to remote object storage.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Destination is the interface for an upload target.
type Destination interface {
	// Put stores the content of r under name and returns its URI.
	Put(ctx context.Context, name string, r io.Reader, size int64) (string, error)
}

// File uploads the file at path to dest under its base name.
func File(ctx context.Context, dest Destination, path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", path, err)
	}

	uri, err := dest.Put(ctx, filepath.Base(path), f, fi.Size())
	if err != nil {
		return "", 0, err
	}
	return uri, fi.Size(), nil
}
