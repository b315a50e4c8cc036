package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// URLのプレフィックス（echoのStaticと揃える）
const URLPrefix = "/uploads/"

// UPLOAD_DIR配下に保存する
type LocalDiskStorage struct {
	dir string
}

// DI（ディレクトリが無ければ作る）
func NewLocalDiskStorage(dir string) (*LocalDiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalDiskStorage{dir: dir}, nil
}

func (s *LocalDiskStorage) Dir() string {
	return s.dir
}

// 一時ファイルに書いてからrenameする（途中のファイルを配信しない）
func (s *LocalDiskStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod upload: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("rename upload: %w", err)
	}

	return URLPrefix + name, nil
}
