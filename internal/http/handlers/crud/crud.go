// Package crud implements the five REST handlers shared by every resource:
//
//	POST   /        create
//	GET    /        list, filtered by query parameters
//	GET    /{id}    read
//	PUT    /{id}    replace
//	DELETE /{id}    delete
//
// A resource plugs in by describing how to bind its form fields and where
// its optional image lives (see Resource). Each handler is built by a
// factory method that captures its dependencies once at startup, so the
// router sees plain http.HandlerFuncs.
package crud

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/upload"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
	"github.com/aanand-mishra/campus-api/internal/validate"
)

// Resource describes one entity type to the generic handlers.
type Resource[T any] struct {
	// Name is the singular display name, e.g. "Student".
	Name string

	// FileField is the multipart field carrying the image; FilePrefix
	// starts the stored file name.
	FileField  string
	FilePrefix string

	// Bind builds a record from the request fields.
	Bind func(b *Binder) T

	// Image points at the record's image URL field.
	Image func(rec *T) *string

	// ID reads the primary key of a stored record.
	ID func(rec T) int64
}

// Handler serves one resource.
type Handler[T any] struct {
	res     Resource[T]
	repo    storage.Repository[T]
	uploads *upload.Store
	log     *slog.Logger

	// detail adds the underlying error text to 500 responses.
	detail bool
}

// New builds the handlers for res.
func New[T any](res Resource[T], repo storage.Repository[T], uploads *upload.Store, log *slog.Logger, detail bool) *Handler[T] {
	return &Handler[T]{res: res, repo: repo, uploads: uploads, log: log, detail: detail}
}

// Routes registers the five endpoints on r.
func (h *Handler[T]) Routes(r chi.Router) {
	r.Post("/", h.New())
	r.Get("/", h.GetList())
	r.Get("/{id}", h.GetByID())
	r.Put("/{id}", h.Update())
	r.Delete("/{id}", h.Delete())
}

func (h *Handler[T]) lower() string { return strings.ToLower(h.res.Name) }

// New handles POST. Success answers 201 with the stored record.
func (h *Handler[T]) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.log.Info("creating a "+h.lower(), slog.String("request_id", middleware.GetReqID(r.Context())))

		rec, image, ok := h.decode(w, r)
		if !ok {
			return
		}
		if image != "" {
			*h.res.Image(&rec) = image
		}

		created, err := h.repo.Create(r.Context(), rec)
		if err != nil {
			h.discard(image)
			h.fail(w, err, "Failed to create "+h.lower())
			return
		}

		h.log.Info(h.lower()+" created", slog.Int64("id", h.res.ID(created)))
		response.WriteJSON(w, http.StatusCreated, response.Response{
			Success: true,
			Message: h.res.Name + " created successfully",
			Data:    created,
		})
	}
}

// GetList handles GET on the collection. Every query parameter is passed
// to the repository as a filter; unknown ones are ignored there.
func (h *Handler[T]) GetList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := storage.Filters{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				filters[key] = values[0]
			}
		}

		records, err := h.repo.List(r.Context(), filters)
		if err != nil {
			h.fail(w, err, "Failed to fetch "+h.lower()+"s")
			return
		}
		response.WriteJSON(w, http.StatusOK, response.List(records))
	}
}

// GetByID handles GET on one record.
func (h *Handler[T]) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		rec, err := h.repo.Get(r.Context(), id)
		if err != nil {
			h.fail(w, err, "Failed to fetch "+h.lower())
			return
		}
		response.WriteJSON(w, http.StatusOK, response.OK(rec))
	}
}

// Update handles PUT. The stored image is kept unless a new file is sent,
// in which case the old file is removed once the update succeeds.
func (h *Handler[T]) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		h.log.Info("updating a "+h.lower(), slog.Int64("id", id))

		existing, err := h.repo.Get(r.Context(), id)
		if err != nil {
			h.fail(w, err, "Failed to update "+h.lower())
			return
		}

		rec, image, ok := h.decode(w, r)
		if !ok {
			return
		}
		previous := *h.res.Image(&existing)
		if image != "" {
			*h.res.Image(&rec) = image
		} else {
			*h.res.Image(&rec) = previous
		}

		updated, err := h.repo.Update(r.Context(), id, rec)
		if err != nil {
			h.discard(image)
			h.fail(w, err, "Failed to update "+h.lower())
			return
		}
		if image != "" && previous != "" && previous != image {
			h.discard(previous)
		}

		h.log.Info(h.lower()+" updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Response{
			Success: true,
			Message: h.res.Name + " updated successfully",
			Data:    updated,
		})
	}
}

// Delete handles DELETE.
func (h *Handler[T]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		h.log.Info("deleting a "+h.lower(), slog.Int64("id", id))

		deleted, err := h.repo.Delete(r.Context(), id)
		if err != nil {
			h.fail(w, err, "Failed to delete "+h.lower())
			return
		}
		if !deleted {
			h.notFound(w)
			return
		}

		h.log.Info(h.lower()+" deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message(h.res.Name+" deleted successfully"))
	}
}

// decode reads the body, stores the optional image and validates the
// record. On failure it has already answered and removed the image.
func (h *Handler[T]) decode(w http.ResponseWriter, r *http.Request) (rec T, image string, ok bool) {
	// Room for the file plus the text fields around it.
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+1<<20)

	form, err := readForm(r)
	if err != nil {
		if errors.Is(err, errTooLarge) || errors.Is(err, errEmptyBody) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.Fail("Invalid request body"))
		}
		return rec, "", false
	}

	image, err = h.uploads.Save(r, h.res.FileField, h.res.FilePrefix)
	switch {
	case errors.Is(err, upload.ErrNotImage), errors.Is(err, upload.ErrTooLarge):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return rec, "", false
	case err != nil:
		h.fail(w, err, "Failed to store "+h.res.FileField)
		return rec, "", false
	}

	b := NewBinder(form)
	rec = h.res.Bind(b)

	msgs := append(b.Errors(), validate.Struct(rec, b.Failed()...)...)
	if len(msgs) > 0 {
		h.discard(image)
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(msgs))
		return rec, "", false
	}
	return rec, image, true
}

// pathID parses {id}. Anything that is not a positive integer cannot name
// a record, so it is answered like an unknown id.
func (h *Handler[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		h.notFound(w)
		return 0, false
	}
	return id, true
}

func (h *Handler[T]) notFound(w http.ResponseWriter) {
	response.WriteJSON(w, http.StatusNotFound, response.Fail(h.res.Name+" not found"))
}

// fail maps a storage error onto the response taxonomy.
func (h *Handler[T]) fail(w http.ResponseWriter, err error, msg string) {
	var conflict *storage.ConflictError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.notFound(w)
	case errors.As(err, &conflict):
		response.WriteJSON(w, http.StatusConflict, response.Fail(fieldLabel(conflict.Field)+" already exists"))
	case errors.Is(err, storage.ErrConflict):
		response.WriteJSON(w, http.StatusConflict, response.Fail(h.res.Name+" already exists"))
	case errors.Is(err, storage.ErrInvalid):
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError([]string{"record violates a database constraint"}))
	default:
		h.log.Error(msg, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.Internal(msg, err, h.detail))
	}
}

// discard removes an image stored for a request that did not complete.
func (h *Handler[T]) discard(image string) {
	if image == "" {
		return
	}
	if err := h.uploads.Remove(image); err != nil {
		h.log.Warn("failed to remove image", slog.String("image", image), slog.String("error", err.Error()))
	}
}

// fieldLabel turns "serial_number" into "Serial number".
func fieldLabel(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return "Record"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
