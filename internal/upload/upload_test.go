package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 64)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 64)...)
)

// multipartRequest builds a parsed request carrying one file under field.
func multipartRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "John Doe"))
	if field != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/students", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(1<<20))
	return r
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "uploads"), 1024)
	require.NoError(t, err)
	return s
}

func TestSaveStoresImage(t *testing.T) {
	s := newStore(t)

	url, err := s.Save(multipartRequest(t, "picture", "Me.PNG", "image/png", pngBytes), "picture", "student")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/student-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	stored, err := os.ReadFile(filepath.Join(s.Dir(), strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	again, err := s.Save(multipartRequest(t, "picture", "Me.PNG", "image/png", pngBytes), "picture", "student")
	require.NoError(t, err)
	assert.NotEqual(t, url, again, "names never collide")
}

func TestSaveWithoutFile(t *testing.T) {
	s := newStore(t)

	url, err := s.Save(multipartRequest(t, "", "", "", nil), "picture", "student")
	require.NoError(t, err)
	assert.Empty(t, url)

	url, err = s.Save(httptest.NewRequest(http.MethodPost, "/", nil), "picture", "student")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestSaveRejectsNonImages(t *testing.T) {
	s := newStore(t)

	cases := []struct {
		name, filename, contentType string
		content                     []byte
	}{
		{"bad extension", "notes.txt", "image/png", pngBytes},
		{"bad declared type", "photo.png", "text/plain", pngBytes},
		{"content is not an image", "photo.png", "image/png", []byte("<html><body>hi</body></html>")},
		{"declared type disagrees with bytes", "photo.gif", "image/gif", pngBytes},
		{"extension disagrees with type", "photo.png", "image/jpeg", jpegBytes},
		{"extension disagrees with bytes", "photo.png", "image/png", jpegBytes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Save(multipartRequest(t, "image", tc.filename, tc.contentType, tc.content), "image", "asset")
			assert.ErrorIs(t, err, ErrNotImage)
		})
	}

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveAcceptsGIF(t *testing.T) {
	s := newStore(t)
	url, err := s.Save(multipartRequest(t, "image", "anim.gif", "image/gif", gifBytes), "image", "asset")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/asset-"))
}

func TestSaveAcceptsJPEGUnderEitherExtension(t *testing.T) {
	s := newStore(t)
	for _, name := range []string{"photo.jpg", "photo.JPEG"} {
		url, err := s.Save(multipartRequest(t, "image", name, "image/jpeg", jpegBytes), "image", "asset")
		require.NoError(t, err, name)
		assert.True(t, strings.HasSuffix(url, strings.ToLower(filepath.Ext(name))), url)
	}
}

func TestSaveRejectsLargeFiles(t *testing.T) {
	s := newStore(t)
	big := append(append([]byte{}, pngBytes...), make([]byte, 2048)...)

	_, err := s.Save(multipartRequest(t, "picture", "big.png", "image/png", big), "picture", "student")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	url, err := s.Save(multipartRequest(t, "picture", "me.png", "image/png", pngBytes), "picture", "student")
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(s.Dir(), strings.TrimPrefix(url, URLPrefix)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(url), "already gone")
	assert.NoError(t, s.Remove(""))
	assert.NoError(t, s.Remove("/uploads/../config.yaml"))
	assert.NoError(t, s.Remove("https://example.com/a.png"))
}

func TestHandlerServesFiles(t *testing.T) {
	s := newStore(t)
	url, err := s.Save(multipartRequest(t, "picture", "me.png", "image/png", pngBytes), "picture", "student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}
