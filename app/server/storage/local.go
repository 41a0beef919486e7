package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var _ Storage = (*Local)(nil)

const tempPrefix = ".upload-"

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &Local{dir: dir}, nil
}

// path 只接受单层文件名，存储名由系统生成，这里再挡一次路径穿越
func (s *Local) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.HasPrefix(name, tempPrefix) {
		return "", fmt.Errorf("invalid storage name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Local) Put(_ context.Context, name string, r io.Reader, size int64) error {
	dst, err := s.path(name)
	if err != nil {
		return err
	}

	// 先写临时文件再重命名，读者不会看到写了一半的文件
	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("wrote %d of %d bytes: %w", written, size, ErrSizeMismatch)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err = os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return nil
}

func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, ErrNotExist
		}
		return nil, 0, fmt.Errorf("failed to open %s: %w", name, err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return f, stat.Size(), nil
}

func (s *Local) Remove(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	return nil
}

func (s *Local) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
