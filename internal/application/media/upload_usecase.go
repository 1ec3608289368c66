// Package media guarda las imágenes subidas (ítems, KTM/KTP de prestatarios y avatares).
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/labinventaris/internal/domain"
)

// Kind destino de la imagen; define el prefijo de la clave.
type Kind string

const (
	KindItem   Kind = "item"
	KindIDCard Kind = "idcard"
	KindAvatar Kind = "avatar"
)

var prefixes = map[Kind]string{
	KindItem:   "items",
	KindIDCard: "id-cards",
	KindAvatar: "avatars",
}

// ParseKind valida el tipo pedido.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prefixes[k]; !ok {
		return "", fmt.Errorf("tipo de imagen %q: %w", s, domain.ErrInvalidInput)
	}
	return k, nil
}

// BlobStore almacenamiento de objetos. Put devuelve la URL pública del objeto.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Upload resultado de una subida.
type Upload struct {
	URL         string
	Key         string
	Size        int64
	ContentType string
}

// UploadUseCase valida y guarda imágenes.
type UploadUseCase struct {
	blobs    BlobStore
	maxBytes int64
	log      zerolog.Logger
}

// NewUploadUseCase construye el caso de uso. maxBytes es el tamaño máximo aceptado.
func NewUploadUseCase(blobs BlobStore, maxBytes int64, log zerolog.Logger) *UploadUseCase {
	return &UploadUseCase{blobs: blobs, maxBytes: maxBytes, log: log}
}

// Upload guarda body bajo una clave nueva y devuelve su URL pública. Solo acepta image/*;
// si contentType viene vacío se detecta a partir del contenido.
func (uc *UploadUseCase) Upload(ctx context.Context, kind Kind, filename, contentType string, body io.Reader) (*Upload, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return nil, fmt.Errorf("tipo de imagen %q: %w", kind, domain.ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(body, uc.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("imagen vacía: %w", domain.ErrInvalidInput)
	}
	if int64(len(data)) > uc.maxBytes {
		return nil, fmt.Errorf("imagen supera %d bytes: %w", uc.maxBytes, domain.ErrInvalidInput)
	}

	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("tipo de contenido %q: %w", contentType, domain.ErrUnsupportedFormat)
	}

	key := path.Join(prefix, uuid.NewString()+extension(filename, contentType))
	url, err := uc.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("no se pudo guardar la imagen")
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}
	uc.log.Info().Str("key", key).Int("bytes", len(data)).Msg("imagen guardada")
	return &Upload{URL: url, Key: key, Size: int64(len(data)), ContentType: contentType}, nil
}

// extension usa la del nombre original si la tiene; si no, la del tipo MIME.
func extension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
