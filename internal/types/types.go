// Package types holds the records shared by the handlers, the validator and
// the storage layer. Keeping them in one place prevents import cycles.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     controls the field name in API responses.
//  2. validate:"..." rules checked by go-playground/validator before a
//     record reaches the database.
//
// Optional text fields are plain strings; the storage layer persists an
// empty string as NULL so unique columns such as serial_number never collide
// on "".
package types

import "time"

// Enumerations. The validate tags below and the CHECK constraints created by
// the storage layer are both derived from these lists.
var (
	StudentLevels      = []string{"100", "200", "300", "400", "500"}
	StudentSexes       = []string{"Male", "Female"}
	StudentDepartments = []string{"Computer Science", "Engineering", "Business", "Medicine", "Arts", "Science"}

	AssetCategories  = []string{"Laptop", "Desktop", "Server", "Network", "Mobile", "Printer", "Monitor", "Other"}
	AssetStatuses    = []string{"Active", "Inactive", "Maintenance", "Disposed", "Lost"}
	AssetDepartments = []string{"IT", "HR", "Finance", "Marketing", "Operations", "Management"}
)

// Student age bounds, inclusive.
const (
	MinStudentAge = 16
	MaxStudentAge = 100
)

// Student is a record of the Student Management System.
type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"       validate:"required,min=2,max=100"`
	Email      string    `json:"email"      validate:"required,email,max=255"`
	Age        int       `json:"age"        validate:"required,gte=16,lte=100"`
	Course     string    `json:"course"     validate:"required,min=2,max=100"`
	Level      string    `json:"level"      validate:"omitempty,enum=level"`
	Sex        string    `json:"sex"        validate:"omitempty,enum=sex"`
	Department string    `json:"department" validate:"omitempty,enum=student_department"`
	Picture    string    `json:"picture"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Asset is a record of the IT Asset Inventory System.
type Asset struct {
	ID             int64     `json:"id"`
	AssetTag       string    `json:"asset_tag"       validate:"required,min=1,max=50"`
	Name           string    `json:"name"            validate:"required,min=2,max=100"`
	Category       string    `json:"category"        validate:"required,enum=category"`
	Brand          string    `json:"brand"           validate:"required,min=1,max=50"`
	Model          string    `json:"model"           validate:"required,min=1,max=100"`
	SerialNumber   string    `json:"serial_number"   validate:"max=100"`
	Status         string    `json:"status"          validate:"required,enum=status"`
	Location       string    `json:"location"        validate:"required,min=1,max=100"`
	Department     string    `json:"department"      validate:"required,enum=asset_department"`
	AssignedTo     string    `json:"assigned_to"     validate:"max=100"`
	PurchaseDate   *Date     `json:"purchase_date"`
	WarrantyExpiry *Date     `json:"warranty_expiry"`
	Cost           *float64  `json:"cost"            validate:"omitempty,gte=0,lte=99999999.99"`
	Notes          string    `json:"notes"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Enums maps the names used in `enum=<name>` validate tags to their
// allowed values.
var Enums = map[string][]string{
	"level":              StudentLevels,
	"sex":                StudentSexes,
	"student_department": StudentDepartments,
	"category":           AssetCategories,
	"status":             AssetStatuses,
	"asset_department":   AssetDepartments,
}
