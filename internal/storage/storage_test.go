package storage_test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func randBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	n, err := rand.Read(data)
	require.NoError(t, err)
	require.Equal(t, n, size)
	return data
}

func createFile(t *testing.T, name string, data []byte) {
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, data, 0o644))
}
