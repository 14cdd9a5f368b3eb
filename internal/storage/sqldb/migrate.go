package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aanand-mishra/campus-api/internal/types"
)

func inList(column string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return fmt.Sprintf("CHECK (%s IN (%s))", column, strings.Join(quoted, ", "))
}

// tables returns the CREATE TABLE statements for d.
// Unique constraints are named <table>_<column>_key so that PostgreSQL
// violations can be traced back to their column.
func tables(d Dialect) []string {
	t := d.Types()

	students := `CREATE TABLE IF NOT EXISTS students (
	id ` + t.ID + `,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL CONSTRAINT students_email_key UNIQUE,
	age INTEGER NOT NULL CHECK (age BETWEEN ` + fmt.Sprint(types.MinStudentAge) + ` AND ` + fmt.Sprint(types.MaxStudentAge) + `),
	course VARCHAR(100) NOT NULL,
	level VARCHAR(10) ` + inList("level", types.StudentLevels) + `,
	sex VARCHAR(10) ` + inList("sex", types.StudentSexes) + `,
	department VARCHAR(50) ` + inList("department", types.StudentDepartments) + `,
	picture TEXT,
	created_at ` + t.Timestamp + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at ` + t.Timestamp + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

	assets := `CREATE TABLE IF NOT EXISTS assets (
	id ` + t.ID + `,
	asset_tag VARCHAR(50) NOT NULL CONSTRAINT assets_asset_tag_key UNIQUE,
	name VARCHAR(100) NOT NULL,
	category VARCHAR(50) NOT NULL ` + inList("category", types.AssetCategories) + `,
	brand VARCHAR(50) NOT NULL,
	model VARCHAR(100) NOT NULL,
	serial_number VARCHAR(100) CONSTRAINT assets_serial_number_key UNIQUE,
	status VARCHAR(20) NOT NULL ` + inList("status", types.AssetStatuses) + `,
	location VARCHAR(100) NOT NULL,
	department VARCHAR(50) NOT NULL ` + inList("department", types.AssetDepartments) + `,
	assigned_to VARCHAR(100),
	purchase_date ` + t.Date + `,
	warranty_expiry ` + t.Date + `,
	cost ` + t.Money + ` CHECK (cost >= 0),
	notes TEXT,
	image TEXT,
	created_at ` + t.Timestamp + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at ` + t.Timestamp + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

	return []string{students, assets}
}

// indexes cover every list filter.
var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_students_created_at ON students(created_at)",
	"CREATE INDEX IF NOT EXISTS idx_students_level ON students(level)",
	"CREATE INDEX IF NOT EXISTS idx_students_department ON students(department)",
	"CREATE INDEX IF NOT EXISTS idx_assets_created_at ON assets(created_at)",
	"CREATE INDEX IF NOT EXISTS idx_assets_category ON assets(category)",
	"CREATE INDEX IF NOT EXISTS idx_assets_status ON assets(status)",
	"CREATE INDEX IF NOT EXISTS idx_assets_department ON assets(department)",
	"CREATE INDEX IF NOT EXISTS idx_assets_location ON assets(location)",
}

// studentProfileColumns were added to students after the first release.
// Databases created before that have a students table without them.
var studentProfileColumns = []string{"level", "sex", "department", "picture"}

// Migrate creates tables, upgrades old student tables and creates indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range tables(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: create table: %w", err)
		}
	}
	if _, err := s.Upgrade(ctx); err != nil {
		return err
	}
	for _, stmt := range indexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: create index: %w", err)
		}
	}
	return nil
}

// Upgrade adds the student profile columns that are missing and returns
// their names. Running it on an up-to-date database is a no-op.
func (s *Store) Upgrade(ctx context.Context) ([]string, error) {
	var added []string
	for _, col := range studentProfileColumns {
		ok, err := s.dialect.HasColumn(ctx, s.db, "students", col)
		if err != nil {
			return added, fmt.Errorf("migrate: inspect students.%s: %w", col, err)
		}
		if ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, "ALTER TABLE students ADD COLUMN "+col+" TEXT"); err != nil {
			return added, fmt.Errorf("migrate: add students.%s: %w", col, err)
		}
		added = append(added, col)
	}
	return added, nil
}
