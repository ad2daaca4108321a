package entity

import (
	"encoding/json"
)

// SchemaVersion atual das configurações persistidas.
const SchemaVersion = "1.2.0"

// Weekdays na ordem usada pelas tabelas de horário.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DayHours é a janela de atendimento de um dia da semana.
// open == close == "00:00" é sentinela de "fechado o dia inteiro",
// independente do campo Enabled.
type DayHours struct {
	Open    string `json:"open"`
	Close   string `json:"close"`
	Enabled bool   `json:"enabled"`
}

// Closed reporta se o dia está fechado (desabilitado ou sentinela 00:00/00:00).
func (d DayHours) Closed() bool {
	if !d.Enabled {
		return true
	}
	return d.Open == "00:00" && d.Close == "00:00"
}

type WidgetSettings struct {
	Position      string `json:"position"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	TextColor     string `json:"text_color"`
	Text          string `json:"text"`
	Enabled       bool   `json:"enabled"`
	ShowOnMobile  bool   `json:"show_on_mobile"`
	ShowOnDesktop bool   `json:"show_on_desktop"`
}

type NotificationSettings struct {
	EmailNotifications bool            `json:"email_notifications"`
	AdminEmail         string          `json:"admin_email"`
	NotificationEvents map[string]bool `json:"notification_events"`
}

type RateLimitSettings struct {
	Enabled            bool `json:"enabled"`
	MaxRequestsPerHour int  `json:"max_requests_per_hour"`
	MaxRequestsPerDay  int  `json:"max_requests_per_day"`
	TimeWindow         int  `json:"time_window"` // segundos
}

type AdvancedSettings struct {
	DebugMode     bool `json:"debug_mode"`
	LogMessages   bool `json:"log_messages"`
	CacheDuration int  `json:"cache_duration"` // segundos
}

// Settings é o snapshot imutável de configuração do tenant. Toda leitura
// devolve a estrutura completa (merge dos valores persistidos sobre os
// defaults); quem consome nunca altera o snapshot — updates passam pelo
// config.Store.
type Settings struct {
	APIKey        string               `json:"api_key"`
	PhoneNumberID string               `json:"phone_number_id"`
	PhoneNumber   string               `json:"phone_number"`
	BusinessName  string               `json:"business_name"`
	Enabled       bool                 `json:"enabled"`
	BusinessHours map[string]DayHours  `json:"business_hours"`
	Widget        WidgetSettings       `json:"widget_settings"`
	Notifications NotificationSettings `json:"notification_settings"`
	Templates     map[string]string    `json:"message_templates"`
	RateLimit     RateLimitSettings    `json:"rate_limit_settings"`
	Advanced      AdvancedSettings     `json:"advanced_settings"`
	Version       string               `json:"schema_version"`
}

// DefaultSettings devolve a configuração embutida completa.
func DefaultSettings() Settings {
	return Settings{
		Enabled: false,
		BusinessHours: map[string]DayHours{
			"monday":    {Open: "09:00", Close: "18:00", Enabled: true},
			"tuesday":   {Open: "09:00", Close: "18:00", Enabled: true},
			"wednesday": {Open: "09:00", Close: "18:00", Enabled: true},
			"thursday":  {Open: "09:00", Close: "18:00", Enabled: true},
			"friday":    {Open: "09:00", Close: "18:00", Enabled: true},
			"saturday":  {Open: "10:00", Close: "14:00", Enabled: true},
			"sunday":    {Open: "00:00", Close: "00:00", Enabled: false},
		},
		Widget: WidgetSettings{
			Position:      "bottom-right",
			Size:          "medium",
			Color:         "#25D366",
			TextColor:     "#ffffff",
			Text:          "¿Necesitas ayuda?",
			Enabled:       true,
			ShowOnMobile:  true,
			ShowOnDesktop: true,
		},
		Notifications: NotificationSettings{
			EmailNotifications: false,
			AdminEmail:         "",
			NotificationEvents: map[string]bool{
				"message_sent":  true,
				"message_error": true,
			},
		},
		Templates: map[string]string{
			"default":     "¡Hola! ¿En qué puedo ayudarte?",
			"welcome":     "¡Bienvenido a {business_name}! ¿Cómo puedo asistirte hoy?",
			"support":     "Hola, necesito soporte técnico.",
			"sales":       "Hola, me interesa conocer más sobre sus productos.",
			"appointment": "Hola, me gustaría agendar una cita.",
		},
		RateLimit: RateLimitSettings{
			Enabled:            true,
			MaxRequestsPerHour: 100,
			MaxRequestsPerDay:  1000,
			TimeWindow:         3600,
		},
		Advanced: AdvancedSettings{
			DebugMode:     false,
			LogMessages:   true,
			CacheDuration: 3600,
		},
		Version: SchemaVersion,
	}
}

// ToMap converte o snapshot para a árvore genérica usada pelo validador de
// schema e pela persistência. Round-trip por JSON mantém os nomes snake_case.
func (s Settings) ToMap() map[string]any {
	raw, err := json.Marshal(s)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// SettingsFromMap monta um snapshot a partir da árvore genérica, preenchendo
// campos ausentes com os defaults.
func SettingsFromMap(m map[string]any) Settings {
	s := DefaultSettings()
	if len(m) == 0 {
		return s
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return s
	}
	// json.Unmarshal só sobrescreve as chaves presentes, o resto fica default
	_ = json.Unmarshal(raw, &s)
	if s.Version == "" {
		s.Version = SchemaVersion
	}
	return s
}

// Clone devolve uma cópia profunda, para o Store trocar o snapshot sem
// compartilhar maps com o chamador.
func (s Settings) Clone() Settings {
	out := s
	out.BusinessHours = make(map[string]DayHours, len(s.BusinessHours))
	for k, v := range s.BusinessHours {
		out.BusinessHours[k] = v
	}
	out.Templates = make(map[string]string, len(s.Templates))
	for k, v := range s.Templates {
		out.Templates[k] = v
	}
	out.Notifications.NotificationEvents = make(map[string]bool, len(s.Notifications.NotificationEvents))
	for k, v := range s.Notifications.NotificationEvents {
		out.Notifications.NotificationEvents[k] = v
	}
	return out
}
