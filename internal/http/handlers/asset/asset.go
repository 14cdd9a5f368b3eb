// Package asset wires the IT Asset resource into the generic CRUD handlers.
//
// Routes are mounted under /api/v1/assets. The optional file field is
// "image". List filters: search (tag, name, brand, model, assignee),
// category, status and department (exact), location (substring).
package asset

import (
	"log/slog"

	"github.com/aanand-mishra/campus-api/internal/http/handlers/crud"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/upload"
)

// Resource describes assets to the CRUD handlers.
var Resource = crud.Resource[types.Asset]{
	Name:       "Asset",
	FileField:  "image",
	FilePrefix: "asset",
	Bind:       bind,
	Image:      func(a *types.Asset) *string { return &a.Image },
	ID:         func(a types.Asset) int64 { return a.ID },
}

// New returns the asset handlers.
func New(repo storage.Repository[types.Asset], uploads *upload.Store, log *slog.Logger, detail bool) *crud.Handler[types.Asset] {
	return crud.New(Resource, repo, uploads, log.With(slog.String("resource", "assets")), detail)
}

func bind(b *crud.Binder) types.Asset {
	var a types.Asset
	b.Text("asset_tag", &a.AssetTag)
	b.Text("name", &a.Name)
	b.Text("category", &a.Category)
	b.Text("brand", &a.Brand)
	b.Text("model", &a.Model)
	b.Text("serial_number", &a.SerialNumber)
	b.Text("status", &a.Status)
	b.Text("location", &a.Location)
	b.Text("department", &a.Department)
	b.Text("assigned_to", &a.AssignedTo)
	b.Date("purchase_date", &a.PurchaseDate)
	b.Date("warranty_expiry", &a.WarrantyExpiry)
	b.Float("cost", &a.Cost)
	b.Text("notes", &a.Notes)
	return a
}
