// Package student wires the Student resource into the generic CRUD
// handlers.
//
// Routes (mounted under /api/v1/students):
//
//	POST   /        create; optional "picture" file
//	GET    /        list; ?search= matches name, email or course,
//	                ?level= ?sex= ?department= match exactly
//	GET    /{id}    read
//	PUT    /{id}    replace; the picture is kept when no file is sent
//	DELETE /{id}    delete
package student

import (
	"log/slog"

	"github.com/aanand-mishra/campus-api/internal/http/handlers/crud"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/upload"
)

// Resource describes students to the CRUD handlers.
var Resource = crud.Resource[types.Student]{
	Name:       "Student",
	FileField:  "picture",
	FilePrefix: "student",
	Bind:       bind,
	Image:      func(s *types.Student) *string { return &s.Picture },
	ID:         func(s types.Student) int64 { return s.ID },
}

// New returns the student handlers.
func New(repo storage.Repository[types.Student], uploads *upload.Store, log *slog.Logger, detail bool) *crud.Handler[types.Student] {
	return crud.New(Resource, repo, uploads, log.With(slog.String("resource", "students")), detail)
}

func bind(b *crud.Binder) types.Student {
	var s types.Student
	b.Text("name", &s.Name)
	b.Text("email", &s.Email)
	b.Int("age", &s.Age)
	b.Text("course", &s.Course)
	b.Text("level", &s.Level)
	b.Text("sex", &s.Sex)
	b.Text("department", &s.Department)
	return s
}
