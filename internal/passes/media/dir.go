package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DirStore keeps media as files in Dir. Files older than TTL are treated as
// gone and are removed on the next Put. A zero TTL keeps files forever.
type DirStore struct {
	Dir string
	TTL time.Duration
}

func NewDirStore(dir string, ttl time.Duration) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create dir: %w", err)
	}
	return &DirStore{Dir: dir, TTL: ttl}, nil
}

func (s *DirStore) expired(mod time.Time) bool {
	return s.TTL > 0 && time.Since(mod) > s.TTL
}

// sweep removes expired files, including abandoned uploads.
func (s *DirStore) sweep() error {
	if s.TTL <= 0 {
		return nil
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("media: sweep: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if s.expired(info.ModTime()) {
			if err := os.Remove(filepath.Join(s.Dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("media: sweep: %w", err)
			}
		}
	}
	return nil
}

func (s *DirStore) Put(_ context.Context, key string, data []byte) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	if err := s.sweep(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("media: put: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("media: put: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("media: put: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, key))
}

func (s *DirStore) Get(_ context.Context, key string) ([]byte, error) {
	if !ValidKey(key) {
		return nil, ErrInvalidKey
	}
	path := filepath.Join(s.Dir, key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.expired(info.ModTime()) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}
