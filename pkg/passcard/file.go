package passcard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RenderFile writes the PNG for d to a uniquely named file in dir and
// returns its path. An empty dir means os.TempDir().
func RenderFile(dir string, d Details) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("passcard: temp dir: %w", err)
	}

	data, err := Render(d)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+".png")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("passcard: write: %w", err)
	}
	return path, nil
}

// WithTempFile renders d to a file, hands its path to fn, and removes the
// file once fn returns, whatever the outcome.
func WithTempFile(dir string, d Details, fn func(path string) error) (err error) {
	path, err := RenderFile(dir, d)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("passcard: cleanup: %w", rmErr)
		}
	}()

	return fn(path)
}
