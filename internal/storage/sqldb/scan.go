package sqldb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// timeLayouts are tried in order when a driver hands back a time as text.
// SQLite stores time.Time values in the first layout.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	types.DateLayout,
}

// nullTime scans TIMESTAMP and DATE columns from either engine.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	}
	return fmt.Errorf("cannot scan %T into a time", src)
}

func (n *nullTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as a time", s)
}

func (n nullTime) date() *types.Date {
	if !n.Valid {
		return nil
	}
	d := types.NewDate(n.Time)
	return &d
}

// text persists "" as NULL.
func text(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func date(d *types.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func float(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
