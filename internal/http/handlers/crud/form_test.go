package crud

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/types"
)

func TestBinderConversions(t *testing.T) {
	b := NewBinder(Form{
		"age":   " 21 ",
		"float": "20.0",
		"bad":   "twenty",
		"cost":  "99.95",
		"nan":   "NaN",
		"date":  "2024-02-29",
		"stamp": "2024-02-29T23:10:00Z",
		"when":  "yesterday",
		"name":  "  spaced  ",
	})

	var age, whole, bad int
	b.Int("age", &age)
	b.Int("float", &whole)
	b.Int("bad", &bad)
	assert.Equal(t, 21, age)
	assert.Equal(t, 20, whole)
	assert.Zero(t, bad)

	var cost, nan, missing *float64
	b.Float("cost", &cost)
	b.Float("nan", &nan)
	b.Float("missing", &missing)
	require.NotNil(t, cost)
	assert.InDelta(t, 99.95, *cost, 1e-9)
	assert.Nil(t, nan)
	assert.Nil(t, missing)

	var date, stamp, when *types.Date
	b.Date("date", &date)
	b.Date("stamp", &stamp)
	b.Date("when", &when)
	assert.Equal(t, "2024-02-29", date.String())
	assert.Equal(t, "2024-02-29", stamp.String())
	assert.Nil(t, when)

	var name string
	b.Text("name", &name)
	assert.Equal(t, "  spaced  ", name)

	assert.Equal(t, []string{"bad", "nan", "when"}, b.Failed())
	assert.Equal(t, []string{
		`"bad" must be an integer`,
		`"nan" must be a number`,
		`"when" must be a valid date`,
	}, b.Errors())
}

func TestReadFormJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"age":20,"cost":1.5,"name":"Ada","notes":null,"active":true}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	f, err := readForm(r)
	require.NoError(t, err)
	assert.Equal(t, Form{"age": "20", "cost": "1.5", "name": "Ada", "notes": "", "active": "true"}, f)
}

func TestReadFormRejectsNestedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":{"first":"Ada"}}`))
	r.Header.Set("Content-Type", "application/json")

	_, err := readForm(r)
	assert.ErrorIs(t, err, errInvalidBody)
}

func TestReadFormWithoutContentType(t *testing.T) {
	f, err := readForm(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Ada")))
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Email", fieldLabel("email"))
	assert.Equal(t, "Serial number", fieldLabel("serial_number"))
	assert.Equal(t, "Record", fieldLabel(""))
}
