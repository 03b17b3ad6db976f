// Package media keeps rendered pass images reachable by URL so the messaging
// channel can fetch them.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrNotFound   = errors.New("media: not found")
	ErrInvalidKey = errors.New("media: invalid key")
)

// Store holds media blobs by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidKey reports whether key is safe to use as a file name and URL segment.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key) && !strings.Contains(key, "..")
}

// Uploader copies a local file into a Store and returns its public URL.
type Uploader struct {
	Store   Store
	BaseURL string
}

// Upload stores the file at path under its base name and returns
// {BaseURL}/media/{key}.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("media: read %s: %w", filepath.Base(path), err)
	}

	key := filepath.Base(path)
	if !ValidKey(key) {
		return "", ErrInvalidKey
	}
	if err := u.Store.Put(ctx, key, data); err != nil {
		return "", err
	}
	return strings.TrimSuffix(u.BaseURL, "/") + "/media/" + key, nil
}
