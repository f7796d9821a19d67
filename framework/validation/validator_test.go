package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		assert.True(t, v.Passes(), "errors: %+v", v.Errors().Bag)
	})
}

func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		require.True(t, v.Fails(), "expected FAIL on field %q", field)
		assert.NotEmpty(t, v.Errors().First(field), "errors: %+v", v.Errors().Bag)
	})
}

// ── rules ────────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty value", map[string]string{"name": "Apple"}, r)
	fail(t, "empty string", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace only", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing key", "name", map[string]string{}, r)
}

func TestValidation_Numbers(t *testing.T) {
	pass(t, "integer", map[string]string{"id": "7"}, validation.Rules{"id": "integer|gt:0"})
	fail(t, "integer zero", "id", map[string]string{"id": "0"}, validation.Rules{"id": "integer|gt:0"})
	fail(t, "integer float", "id", map[string]string{"id": "1.5"}, validation.Rules{"id": "integer"})
	pass(t, "numeric", map[string]string{"price": "9.99"}, validation.Rules{"price": "numeric|gte:0"})
	fail(t, "numeric negative", "price", map[string]string{"price": "-1"}, validation.Rules{"price": "numeric|gte:0"})
	fail(t, "numeric text", "price", map[string]string{"price": "cheap"}, validation.Rules{"price": "numeric"})
}

func TestValidation_Strings(t *testing.T) {
	pass(t, "min/max", map[string]string{"name": "Pear"}, validation.Rules{"name": "min:2|max:10"})
	fail(t, "too short", "name", map[string]string{"name": "P"}, validation.Rules{"name": "min:2"})
	fail(t, "too long", "name", map[string]string{"name": "Pineapple juice"}, validation.Rules{"name": "max:10"})
	pass(t, "in", map[string]string{"c": "fruit"}, validation.Rules{"c": "in:fruit,vegetable"})
	fail(t, "not in", "c", map[string]string{"c": "meat"}, validation.Rules{"c": "in:fruit,vegetable"})
	pass(t, "regex", map[string]string{"code": "AB12"}, validation.Rules{"code": `regex:^[A-Z]+\d+$`})
	fail(t, "regex mismatch", "code", map[string]string{"code": "ab"}, validation.Rules{"code": `regex:^[A-Z]+$`})
}

func TestValidation_Nullable(t *testing.T) {
	r := validation.Rules{"description": "nullable|min:3"}
	pass(t, "empty", map[string]string{"description": ""}, r)
	fail(t, "short", "description", map[string]string{"description": "ab"}, r)
}

// ── messages ─────────────────────────────────────────────────────────────────

func TestValidation_Err(t *testing.T) {
	v := validation.Make(map[string]string{"name": "", "price": "x"}, validation.Rules{
		"name":  "required",
		"price": "numeric",
	})
	require.Error(t, v.Err())
	assert.EqualError(t, v.Err(), "The name field is required. The price must be a number.")

	ok := validation.Make(map[string]string{"name": "x"}, validation.Rules{"name": "required"})
	assert.NoError(t, ok.Err())
}
