package storage

import (
	"io"
)

// DocumentStorage holds uploaded identity documents and hands back a stable
// reference URL for each. The booking engine only stores the returned
// reference; the bytes live behind this interface.
type DocumentStorage interface {
	// Save writes the document under key and returns its reference URL.
	Save(key string, r io.Reader) (string, error)

	// Open reads a previously saved document.
	Open(key string) (io.ReadCloser, error)
}
