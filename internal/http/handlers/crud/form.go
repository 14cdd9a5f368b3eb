package crud

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// Form is the flattened body of a write request: one string per field,
// whatever encoding the client used.
type Form map[string]string

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidBody = errors.New("invalid request body")
	errTooLarge    = errors.New("File too large")
)

// multipartMemory is how much of a multipart body is kept in memory before
// file parts spill to temporary files.
const multipartMemory = 8 << 20

// readForm parses a multipart, urlencoded or JSON body into a Form. For
// multipart bodies r.MultipartForm is left populated for the upload store.
func readForm(r *http.Request) (Form, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		return flatten(r.MultipartForm.Value), nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return flatten(r.PostForm), nil

	case "application/json":
		return decodeJSON(r.Body)

	default:
		return Form{}, nil
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errTooLarge
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}

func flatten(values map[string][]string) Form {
	f := make(Form, len(values))
	for k, v := range values {
		if len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f
}

// decodeJSON accepts a flat JSON object. Numbers keep their literal text so
// they go through the same conversions as form values.
func decodeJSON(body io.Reader) (Form, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, bodyError(err)
	}

	f := make(Form, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			f[k] = ""
		case string:
			f[k] = v
		case json.Number:
			f[k] = v.String()
		case bool:
			f[k] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("%w: %q must be a scalar", errInvalidBody, k)
		}
	}
	return f, nil
}

// Binder fills a record from a Form and collects the values that could
// not be converted to the field's type.
type Binder struct {
	form   Form
	errs   []string
	failed []string
}

// NewBinder returns a Binder reading from f.
func NewBinder(f Form) *Binder {
	return &Binder{form: f}
}

func (b *Binder) fail(key, msg string) {
	b.errs = append(b.errs, fmt.Sprintf("%q %s", key, msg))
	b.failed = append(b.failed, key)
}

// Errors returns the conversion failures in the order they happened.
func (b *Binder) Errors() []string { return b.errs }

// Failed lists the fields with conversion failures.
func (b *Binder) Failed() []string { return b.failed }

// Text copies a string field as sent.
func (b *Binder) Text(key string, dst *string) {
	*dst = b.form[key]
}

// Int parses an integer field. An empty value leaves dst at zero.
func (b *Binder) Int(key string, dst *int) {
	s := strings.TrimSpace(b.form[key])
	if s == "" {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept "20.0" from clients that send every number as a float.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			b.fail(key, "must be an integer")
			return
		}
		n = int(f)
	}
	*dst = n
}

// Float parses an optional number. An empty value leaves dst nil.
func (b *Binder) Float(key string, dst **float64) {
	s := strings.TrimSpace(b.form[key])
	if s == "" {
		*dst = nil
		return
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		b.fail(key, "must be a number")
		return
	}
	*dst = &f
}

// Date parses an optional calendar date. An empty value leaves dst nil.
func (b *Binder) Date(key string, dst **types.Date) {
	s := strings.TrimSpace(b.form[key])
	if s == "" {
		*dst = nil
		return
	}
	d, err := types.ParseDate(s)
	if err != nil {
		b.fail(key, "must be a valid date")
		return
	}
	*dst = &d
}
