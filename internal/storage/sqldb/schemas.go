package sqldb

import (
	"database/sql"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// StudentSchema maps types.Student onto the students table.
var StudentSchema = Schema[types.Student]{
	Table:   "students",
	Columns: []string{"name", "email", "age", "course", "level", "sex", "department", "picture"},
	Search:  []string{"name", "email", "course"},
	Filters: []Filter{
		{Key: "level", Column: "level", Match: MatchEqual},
		{Key: "sex", Column: "sex", Match: MatchEqual},
		{Key: "department", Column: "department", Match: MatchEqual},
	},
	Values: func(s types.Student) []any {
		return []any{
			s.Name, s.Email, s.Age, s.Course,
			text(s.Level), text(s.Sex), text(s.Department), text(s.Picture),
		}
	},
	Scan: func(row RowScanner) (types.Student, error) {
		var (
			s                               types.Student
			level, sex, department, picture sql.NullString
			created, updated                nullTime
		)
		err := row.Scan(
			&s.ID, &s.Name, &s.Email, &s.Age, &s.Course,
			&level, &sex, &department, &picture,
			&created, &updated,
		)
		if err != nil {
			return types.Student{}, err
		}
		s.Level, s.Sex, s.Department, s.Picture = level.String, sex.String, department.String, picture.String
		s.CreatedAt, s.UpdatedAt = created.Time, updated.Time
		return s, nil
	},
}

// AssetSchema maps types.Asset onto the assets table.
var AssetSchema = Schema[types.Asset]{
	Table: "assets",
	Columns: []string{
		"asset_tag", "name", "category", "brand", "model", "serial_number", "status",
		"location", "department", "assigned_to", "purchase_date", "warranty_expiry",
		"cost", "notes", "image",
	},
	Search: []string{"asset_tag", "name", "brand", "model", "assigned_to"},
	Filters: []Filter{
		{Key: "category", Column: "category", Match: MatchEqual},
		{Key: "status", Column: "status", Match: MatchEqual},
		{Key: "department", Column: "department", Match: MatchEqual},
		{Key: "location", Column: "location", Match: MatchContains},
	},
	Values: func(a types.Asset) []any {
		return []any{
			a.AssetTag, a.Name, a.Category, a.Brand, a.Model, text(a.SerialNumber), a.Status,
			a.Location, a.Department, text(a.AssignedTo), date(a.PurchaseDate), date(a.WarrantyExpiry),
			float(a.Cost), text(a.Notes), text(a.Image),
		}
	},
	Scan: func(row RowScanner) (types.Asset, error) {
		var (
			a                                    types.Asset
			serial, assigned, notes, image       sql.NullString
			purchase, warranty, created, updated nullTime
			cost                                 sql.NullFloat64
		)
		err := row.Scan(
			&a.ID, &a.AssetTag, &a.Name, &a.Category, &a.Brand, &a.Model, &serial, &a.Status,
			&a.Location, &a.Department, &assigned, &purchase, &warranty,
			&cost, &notes, &image,
			&created, &updated,
		)
		if err != nil {
			return types.Asset{}, err
		}
		a.SerialNumber, a.AssignedTo, a.Notes, a.Image = serial.String, assigned.String, notes.String, image.String
		a.PurchaseDate, a.WarrantyExpiry = purchase.date(), warranty.date()
		a.Cost = nullFloat(cost)
		a.CreatedAt, a.UpdatedAt = created.Time, updated.Time
		return a, nil
	},
}
