package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigAggregatesAllErrors(t *testing.T) {
	v := New()

	schema := Schema{
		"api_key":              {Required: true, Type: "string", MinLength: 10},
		"business_name":        {Type: "string", MaxLength: 100},
		"enabled":              {Type: "bool"},
		"widget_settings.color": {Type: "string", Pattern: `^#[0-9A-Fa-f]{6}$`},
		"rate_limit_settings.max_requests_per_hour": {Type: "int"},
	}

	config := map[string]any{
		"business_name": "Ligue",
		"enabled":       "yes",
		"widget_settings": map[string]any{
			"color": "verde",
		},
		"rate_limit_settings": map[string]any{
			"max_requests_per_hour": 10.5,
		},
	}

	errs := v.ValidateConfig(schema, config)

	assert.False(t, errs.Valid())
	assert.Equal(t, "is required", errs.First("api_key"))
	assert.NotEmpty(t, errs["enabled"])
	assert.NotEmpty(t, errs["widget_settings.color"])
	assert.NotEmpty(t, errs["rate_limit_settings.max_requests_per_hour"])
	assert.Empty(t, errs["business_name"])
}

func TestValidateConfigAcceptsValidTree(t *testing.T) {
	v := New()

	schema := Schema{
		"api_key":        {Required: true, Type: "string", MinLength: 10},
		"phone_number":   {Type: "string", Pattern: `^\+[1-9]\d{1,14}$`},
		"enabled":        {Type: "bool"},
		"widget_settings": {Type: "map"},
	}

	config := map[string]any{
		"api_key":      "EAAGsupersecreta",
		"phone_number": "+5511999999999",
		"enabled":      true,
		"widget_settings": map[string]any{
			"position": "bottom-right",
		},
	}

	assert.True(t, v.ValidateConfig(schema, config).Valid())
}

func TestValidateConfigEnum(t *testing.T) {
	v := New()

	schema := Schema{
		"widget_settings.position": {Type: "string", Enum: []string{"bottom-right", "bottom-left", "top-right", "top-left"}},
	}

	ok := map[string]any{"widget_settings": map[string]any{"position": "top-left"}}
	bad := map[string]any{"widget_settings": map[string]any{"position": "center"}}

	assert.True(t, v.ValidateConfig(schema, ok).Valid())
	assert.NotEmpty(t, v.ValidateConfig(schema, bad)["widget_settings.position"])
}

func TestValidateConfigIntFromJSON(t *testing.T) {
	v := New()
	schema := Schema{"rate_limit_settings.time_window": {Type: "int"}}

	// números vindos de encoding/json chegam como float64
	tree := map[string]any{"rate_limit_settings": map[string]any{"time_window": float64(3600)}}
	assert.True(t, v.ValidateConfig(schema, tree).Valid())
}
