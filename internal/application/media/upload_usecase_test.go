package media_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventaris/internal/application/media"
	"github.com/jhoicas/labinventaris/internal/domain"
)

type fakeBlobs struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakeBlobs) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.key, f.body, f.contentType = key, b, contentType
	return "https://cdn.example.test/" + key, nil
}

// pngHeader bytes mínimos reconocidos como image/png por http.DetectContentType.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_GuardaConPrefijoYExtension(t *testing.T) {
	blobs := &fakeBlobs{}
	uc := media.NewUploadUseCase(blobs, 1024, zerolog.Nop())

	up, err := uc.Upload(context.Background(), media.KindIDCard, "ktm.PNG", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Key, "id-cards/"))
	assert.True(t, strings.HasSuffix(up.Key, ".png"))
	assert.Equal(t, "https://cdn.example.test/"+up.Key, up.URL)
	assert.Equal(t, int64(len(pngHeader)), up.Size)
	assert.Equal(t, pngHeader, blobs.body)
}

func TestUpload_DetectaTipoSiFalta(t *testing.T) {
	blobs := &fakeBlobs{}
	uc := media.NewUploadUseCase(blobs, 1024, zerolog.Nop())

	up, err := uc.Upload(context.Background(), media.KindAvatar, "foto", "", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", up.ContentType)
	assert.True(t, strings.HasPrefix(up.Key, "avatars/"))
	assert.True(t, strings.HasSuffix(up.Key, ".png"))
}

func TestUpload_Rechazos(t *testing.T) {
	uc := media.NewUploadUseCase(&fakeBlobs{}, 8, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Upload(ctx, media.KindItem, "a.txt", "text/plain", strings.NewReader("hola"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = uc.Upload(ctx, media.KindItem, "a.png", "image/png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "supera el máximo")

	_, err = uc.Upload(ctx, media.KindItem, "a.png", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upload(ctx, media.Kind("otro"), "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpload_ErrorDelAlmacenamiento(t *testing.T) {
	down := errors.New("bucket caído")
	uc := media.NewUploadUseCase(&fakeBlobs{err: down}, 1024, zerolog.Nop())
	_, err := uc.Upload(context.Background(), media.KindItem, "a.png", "image/png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, down)
}

func TestParseKind(t *testing.T) {
	k, err := media.ParseKind(" IDCard ")
	require.NoError(t, err)
	assert.Equal(t, media.KindIDCard, k)

	_, err = media.ParseKind("pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
