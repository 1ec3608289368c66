// Package blob implementa media.BlobStore sobre disco local y sobre S3 (o compatibles).
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore guarda los objetos como archivos bajo root. La URL pública es publicURL + "/" + key.
type FSStore struct {
	root      string
	publicURL string
}

// NewFSStore crea el directorio raíz si no existe.
func NewFSStore(root, publicURL string) (*FSStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob fs: crear %s: %w", root, err)
	}
	return &FSStore{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root directorio base (para servirlo como estático).
func (s *FSStore) Root() string { return s.root }

// Put escribe el objeto. Claves con ".." o absolutas se rechazan.
func (s *FSStore) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("blob fs: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("blob fs: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob fs: escribir %s: %w", clean, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob fs: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob fs: %w", err)
	}
	return s.publicURL + "/" + clean, nil
}

func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("blob: clave vacía")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("blob: clave inválida %q", key)
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}
