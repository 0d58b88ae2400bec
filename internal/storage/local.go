package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps documents on the server's disk and serves them back
// through the uploads endpoint.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStorage) Save(key string, r io.Reader) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not write document file: %w", err)
	}
	return s.baseURL + "/api/uploads/" + key, nil
}

func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, key))
}

// validKey rejects anything that could escape the upload directory.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid document key %q", key)
	}
	return nil
}
