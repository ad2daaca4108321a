package config

import (
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

// SettingsSchema é a tabela declarativa de regras dos campos persistidos.
// O validador de schema opera sobre a árvore genérica; os campos aninhados
// usam caminho com ponto.
func SettingsSchema() validation.Schema {
	return validation.Schema{
		"api_key":         {Type: "string", MinLength: 10, MaxLength: 512, Pattern: `^[A-Za-z0-9_-]+$`},
		"phone_number_id": {Type: "string", MaxLength: 64, Pattern: `^\d+$`},
		"phone_number":    {Type: "string", Pattern: `^\+[1-9]\d{1,14}$`},
		"business_name":   {Type: "string", MaxLength: 100},
		"enabled":         {Type: "bool"},

		"business_hours": {Type: "map"},

		"widget_settings":            {Type: "map"},
		"widget_settings.position":   {Type: "string", Enum: []string{"bottom-right", "bottom-left", "top-right", "top-left"}},
		"widget_settings.size":       {Type: "string", Enum: []string{"small", "medium", "large"}},
		"widget_settings.color":      {Type: "string", Pattern: `^#[0-9A-Fa-f]{3}$|^#[0-9A-Fa-f]{6}$`},
		"widget_settings.text_color": {Type: "string", Pattern: `^#[0-9A-Fa-f]{3}$|^#[0-9A-Fa-f]{6}$`},
		"widget_settings.text":       {Type: "string", MaxLength: 200},

		"notification_settings":             {Type: "map"},
		"notification_settings.admin_email": {Type: "string", MaxLength: 320},

		"message_templates": {Type: "map"},

		"rate_limit_settings":                       {Type: "map"},
		"rate_limit_settings.enabled":               {Type: "bool"},
		"rate_limit_settings.max_requests_per_hour": {Type: "int"},
		"rate_limit_settings.max_requests_per_day":  {Type: "int"},
		"rate_limit_settings.time_window":           {Type: "int"},

		"advanced_settings":                {Type: "map"},
		"advanced_settings.debug_mode":     {Type: "bool"},
		"advanced_settings.log_messages":   {Type: "bool"},
		"advanced_settings.cache_duration": {Type: "int"},

		"schema_version": {Type: "string", Pattern: `^\d+\.\d+\.\d+$`},
	}
}

// requiredImportFields: shape mínimo que um payload de Import precisa ter
// para bater com o schema atual.
var requiredImportFields = []string{
	"phone_number",
	"business_name",
	"business_hours",
	"widget_settings",
	"message_templates",
	"rate_limit_settings",
}
