package backup

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is a tiny path-style object store good enough for Put/Get.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3(t *testing.T) (*S3Destination, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	d, err := NewS3Destination(context.Background(), S3Options{
		Bucket:    "backups",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Prefix:    "wordbook",
	})
	require.NoError(t, err)
	return d, fake
}

func TestS3Destination_PutGet(t *testing.T) {
	d, fake := newTestS3(t)
	ctx := context.Background()

	key, err := d.Put(ctx, "kelime-defterim-backup-2024-01-01.json", []byte(`{"days":[],"version":2}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "wordbook/"))
	assert.True(t, strings.HasSuffix(key, "/kelime-defterim-backup-2024-01-01.json"))

	fake.mu.Lock()
	_, stored := fake.objects["/backups/"+key]
	fake.mu.Unlock()
	assert.True(t, stored, "object must be stored path-style under the bucket")

	got, err := d.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"days":[],"version":2}`, string(got))
}

func TestS3Destination_PutTwiceGetsDistinctKeys(t *testing.T) {
	d, _ := newTestS3(t)
	ctx := context.Background()

	k1, err := d.Put(ctx, "same.json", []byte("1"))
	require.NoError(t, err)
	k2, err := d.Put(ctx, "same.json", []byte("2"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestS3Destination_GetMissing(t *testing.T) {
	d, _ := newTestS3(t)

	_, err := d.Get(context.Background(), "wordbook/none.json")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestNewS3Destination_RequiresBucket(t *testing.T) {
	_, err := NewS3Destination(context.Background(), S3Options{})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}
