package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/types"
)

func validStudent() types.Student {
	return types.Student{Name: "John Doe", Email: "john@example.com", Age: 20, Course: "Computer Science"}
}

func validAsset() types.Asset {
	return types.Asset{
		AssetTag:   "IT-001",
		Name:       "ThinkPad",
		Category:   "Laptop",
		Brand:      "Lenovo",
		Model:      "T14",
		Status:     "Active",
		Location:   "HQ",
		Department: "IT",
	}
}

func TestValidStudent(t *testing.T) {
	assert.Nil(t, Struct(validStudent()))

	s := validStudent()
	s.Level, s.Sex, s.Department = "500", "Female", "Medicine"
	assert.Nil(t, Struct(s))
}

func TestInvalidStudentReportsEveryField(t *testing.T) {
	msgs := Struct(types.Student{Name: "A", Email: "invalid-email", Age: 15, Course: ""})

	require.Len(t, msgs, 4)
	assert.Equal(t, []string{
		`"name" length must be at least 2 characters long`,
		`"email" must be a valid email`,
		`"age" must be greater than or equal to 16`,
		`"course" is required`,
	}, msgs)
}

func TestStudentAgeUpperBound(t *testing.T) {
	s := validStudent()
	s.Age = 101
	assert.Equal(t, []string{`"age" must be less than or equal to 100`}, Struct(s))
}

func TestStudentEnums(t *testing.T) {
	s := validStudent()
	s.Level = "600"
	s.Sex = "Other"
	msgs := Struct(s)
	require.Len(t, msgs, 2)
	assert.Equal(t, `"level" must be one of [100, 200, 300, 400, 500]`, msgs[0])
	assert.Equal(t, `"sex" must be one of [Male, Female]`, msgs[1])
}

func TestEveryEnumValueIsAccepted(t *testing.T) {
	for _, lvl := range types.StudentLevels {
		s := validStudent()
		s.Level = lvl
		assert.Nil(t, Struct(s), lvl)
	}
	for _, status := range types.AssetStatuses {
		a := validAsset()
		a.Status = status
		assert.Nil(t, Struct(a), status)
	}
	for _, cat := range types.AssetCategories {
		a := validAsset()
		a.Category = cat
		assert.Nil(t, Struct(a), cat)
	}
	for _, dep := range types.AssetDepartments {
		a := validAsset()
		a.Department = dep
		assert.Nil(t, Struct(a), dep)
	}
}

func TestAssetRules(t *testing.T) {
	assert.Nil(t, Struct(validAsset()))

	zero := 0.0
	a := validAsset()
	a.Cost = &zero
	assert.Nil(t, Struct(a), "zero cost is allowed")

	largest := 99999999.99
	a.Cost = &largest
	assert.Nil(t, Struct(a), "largest NUMERIC(10,2) value is allowed")

	huge := 1e300
	a.Cost = &huge
	assert.Equal(t, []string{`"cost" must be less than or equal to 99999999.99`}, Struct(a))

	negative := -1.0
	a.Cost = &negative
	a.Status = "Stolen"
	a.SerialNumber = strings.Repeat("x", 101)
	msgs := Struct(a)
	assert.ElementsMatch(t, []string{
		`"serial_number" length must be less than or equal to 100 characters long`,
		`"status" must be one of [Active, Inactive, Maintenance, Disposed, Lost]`,
		`"cost" must be greater than or equal to 0`,
	}, msgs)
}

func TestMissingAssetFields(t *testing.T) {
	msgs := Struct(types.Asset{})
	assert.Len(t, msgs, 8)
	assert.Contains(t, msgs, `"asset_tag" is required`)
	assert.Contains(t, msgs, `"department" is required`)
}

func TestSkipFieldsWithConversionErrors(t *testing.T) {
	s := validStudent()
	s.Age = 0
	assert.Nil(t, Struct(s, "age"))

	s.Name = ""
	assert.Equal(t, []string{`"name" is required`}, Struct(s, "age"))
}
