package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalDiskStorage(dir)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "1700000000000-abc.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000-abc.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "1700000000000-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	//一時ファイルは残らない
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalDiskStorage_RejectsPaths(t *testing.T) {
	s, err := NewLocalDiskStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden"} {
		_, err := s.Save(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}
