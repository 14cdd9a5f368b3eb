package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dollar struct{}

func (dollar) Placeholder(n int) string     { return fmt.Sprintf("$%d", n) }
func (dollar) CaseInsensitiveLike() string { return "ILIKE" }

type question struct{}

func (question) Placeholder(n int) string     { return fmt.Sprintf("?%d", n) }
func (question) CaseInsensitiveLike() string { return "LIKE" }

func TestBuildWithoutPredicates(t *testing.T) {
	var b Builder
	b.Eq("status", "").Contains("   ", "name", "brand")

	clause, args := b.Build(dollar{}, 0)
	assert.Empty(t, clause)
	assert.Empty(t, args)
	assert.Empty(t, b.Predicates())
}

func TestBuildEqualityAndSearch(t *testing.T) {
	var b Builder
	b.Contains("john", "name", "email", "course").
		Eq("level", "200").
		Eq("sex", "Female")

	clause, args := b.Build(dollar{}, 0)
	assert.Equal(t,
		` WHERE (name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\' OR course ILIKE $1 ESCAPE '\') AND level = $2 AND sex = $3`,
		clause)
	assert.Equal(t, []any{"%john%", "200", "Female"}, args)
}

func TestBuildSingleColumnContainsHasNoParens(t *testing.T) {
	var b Builder
	b.Contains("Lagos", "location")

	clause, args := b.Build(question{}, 2)
	assert.Equal(t, ` WHERE location LIKE ?3 ESCAPE '\'`, clause)
	assert.Equal(t, []any{"%Lagos%"}, args)
}

func TestPredicatesAreTyped(t *testing.T) {
	var b Builder
	b.Eq("category", " Laptop ").Contains("dell", "brand", "model")

	preds := b.Predicates()
	require.Len(t, preds, 2)
	assert.Equal(t, Predicate{Columns: []string{"category"}, Op: Equal, Arg: "Laptop"}, preds[0])
	assert.Equal(t, Contains, preds[1].Op)
	assert.Equal(t, []string{"brand", "model"}, preds[1].Columns)
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeLike(in), in)
	}

	var b Builder
	b.Contains("100%", "notes")
	_, args := b.Build(dollar{}, 0)
	assert.Equal(t, []any{`%100\%%`}, args)
}
