package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutEscribeArchivoYDevuelveURL(t *testing.T) {
	root := t.TempDir()
	st, err := NewFSStore(root, "/uploads/")
	require.NoError(t, err)

	url, err := st.Put(context.Background(), "items/abc.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/items/abc.png", url)

	b, err := os.ReadFile(filepath.Join(root, "items", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))
}

func TestFSStore_RechazaClavesPeligrosas(t *testing.T) {
	st, err := NewFSStore(t.TempDir(), "")
	require.NoError(t, err)
	for _, key := range []string{"../fuera.png", "/abs.png", "  "} {
		_, err := st.Put(context.Background(), key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
	}
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.lab.test", publicBase(S3Config{Bucket: "b", PublicURL: "https://cdn.lab.test/"}, "r"))
	assert.Equal(t, "http://minio:9000/fotos", publicBase(S3Config{Bucket: "fotos", Endpoint: "http://minio:9000", PathStyle: true}, "r"))
	assert.Equal(t, "https://fotos.r2.test", publicBase(S3Config{Bucket: "fotos", Endpoint: "https://r2.test"}, "r"))
	assert.Equal(t, "https://fotos.s3.ap-southeast-1.amazonaws.com", publicBase(S3Config{Bucket: "fotos"}, "ap-southeast-1"))
}

// recordingTransport responde 200 a todo y guarda las peticiones.
type recordingTransport struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
	}
	rt.mu.Lock()
	rt.reqs = append(rt.reqs, req)
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     http.Header{"ETag": {"\"etag\""}},
		Request:    req,
	}, nil
}

func TestS3Store_PutUsaBucketYClave(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	rt := &recordingTransport{}
	st, err := NewS3Store(context.Background(), S3Config{
		Bucket:    "lab-fotos",
		Region:    "us-east-1",
		Endpoint:  "https://mock.s3.local",
		PathStyle: true,
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", ""))
	})
	require.NoError(t, err)

	url, err := st.Put(context.Background(), "avatars/u.png", bytes.NewReader([]byte("png")), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://mock.s3.local/lab-fotos/avatars/u.png", url)

	require.NotEmpty(t, rt.reqs)
	last := rt.reqs[len(rt.reqs)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/lab-fotos/avatars/u.png", last.URL.Path)
	assert.Equal(t, "image/png", last.Header.Get("Content-Type"))
}
