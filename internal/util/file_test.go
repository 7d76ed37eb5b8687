package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "table.txt")
	_ = os.WriteFile(path, []byte("old"), 0644)

	// WHEN
	err := WriteFileAtomic(path, []byte("100 3\n"))

	// THEN
	assert.NoError(t, err)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "100 3\n", string(content))
}

func TestWriteFileAtomic_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	err := WriteFileAtomic(path, []byte("x"))

	assert.NoError(t, err)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "x", string(content))
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()

	assert.NoError(t, err)
	assert.DirExists(t, dir)
}
