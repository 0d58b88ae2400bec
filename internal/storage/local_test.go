package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.Save("doc-1.pdf", strings.NewReader("license scan"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/uploads/doc-1.pdf", url)

	f, err := store.Open("doc-1.pdf")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "license scan", string(content))
}

func TestLocalStorageRejectsTraversalKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.pdf", "a/b.pdf", `a\b.pdf`, "a..b/../c"} {
		_, err := store.Save(key, strings.NewReader("x"))
		assert.Error(t, err, "key %q must be rejected", key)

		_, err = store.Open(key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}
