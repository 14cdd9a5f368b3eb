// Package upload stores the optional image sent with a write request.
//
// A file is accepted only when its extension, its declared Content-Type and
// its actual leading bytes all name the same image type: JPEG, PNG or GIF.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is the path stored files are served under.
const URLPrefix = "/uploads/"

var (
	ErrNotImage = errors.New("Only image files are allowed")
	ErrTooLarge = errors.New("File too large")
)

// imageTypes maps each accepted extension to its media type.
var imageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// Store writes uploads to one directory on local disk.
type Store struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// New creates dir if needed.
func New(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload.New: create directory: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, now: time.Now}, nil
}

// Dir is the directory files are written to.
func (s *Store) Dir() string { return s.dir }

// MaxBytes is the largest accepted file.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Save stores the file sent under field, if any, and returns its URL path
// ("/uploads/<name>"). It returns "" and no error when the request carries
// no file. The multipart form must already be parsed.
func (s *Store) Save(r *http.Request, field, prefix string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	if header.Size > s.maxBytes {
		return "", ErrTooLarge
	}
	if err := check(file, header); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s-%d-%s%s", prefix, s.now().UnixMilli(), uuid.NewString(), ext)

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return URLPrefix + name, nil
}

// check requires the extension, the declared type and the sniffed type to
// agree on one accepted image type, then rewinds file.
func check(file multipart.File, header *multipart.FileHeader) error {
	want, ok := imageTypes[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		return ErrNotImage
	}

	declared, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || declared != want {
		return ErrNotImage
	}

	sniffed, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("sniff content: %w", err)
	}
	if !sniffed.Is(declared) {
		return ErrNotImage
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	return nil
}

// Remove deletes a file previously returned by Save. Paths outside the
// upload directory and empty paths are ignored.
func (s *Store) Remove(urlPath string) error {
	if !strings.HasPrefix(urlPath, URLPrefix) {
		return nil
	}
	name := path.Base(urlPath)
	if name == "." || name == "/" || name != strings.TrimPrefix(urlPath, URLPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Handler serves the stored files under URLPrefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(s.dir)))
}
