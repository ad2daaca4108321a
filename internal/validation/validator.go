package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

var (
	phoneCleanPattern = regexp.MustCompile(`[^0-9+]`)
	e164Pattern       = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	timePattern       = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
	hexColorPattern   = regexp.MustCompile(`^#[0-9A-Fa-f]{3}$|^#[0-9A-Fa-f]{6}$`)
	rgbColorPattern   = regexp.MustCompile(`^rgb\(\d+,\s*\d+,\s*\d+\)$`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	eventAttrPattern  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Conjunto fixo de cores nomeadas aceitas pelo tipo "css".
var namedColors = map[string]bool{
	"black": true, "white": true, "red": true, "green": true, "blue": true,
	"yellow": true, "orange": true, "purple": true, "pink": true, "gray": true,
	"grey": true, "brown": true, "cyan": true, "magenta": true, "lime": true,
	"navy": true, "teal": true, "olive": true, "maroon": true, "silver": true,
	"gold": true, "transparent": true,
}

// Validator é o motor de regras. Não guarda estado: todo método é puro dado
// seu input e devolve um Result.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// FormatPhoneNumber limpa um número para o formato E.164. Devolve "" quando
// o que sobra depois da limpeza não é um número válido.
func (v *Validator) FormatPhoneNumber(phone string) string {
	cleaned := phoneCleanPattern.ReplaceAllString(phone, "")
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+" + cleaned
	}
	// '+' só pode aparecer na frente
	if strings.Count(cleaned, "+") > 1 {
		return ""
	}
	if !e164Pattern.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// ValidatePhoneNumber valida formato E.164. countryHint, quando informado,
// exige que o número comece com o código de discagem do país.
func (v *Validator) ValidatePhoneNumber(phone, countryHint string) Result {
	errs := Result{}

	cleaned := phoneCleanPattern.ReplaceAllString(phone, "")
	if cleaned == "" {
		errs.Add("phone_number", "phone number is required")
		return errs
	}
	if !strings.HasPrefix(cleaned, "+") {
		errs.Add("phone_number", "phone number must start with country code (+)")
		return errs
	}
	if !e164Pattern.MatchString(cleaned) {
		errs.Add("phone_number", "phone number is not a valid E.164 number")
		return errs
	}
	if len(cleaned) < 8 {
		errs.Add("phone_number", "phone number is too short")
	}
	if len(cleaned) > 16 {
		errs.Add("phone_number", "phone number is too long")
	}

	if countryHint != "" {
		dial, ok := countryDialCodes[strings.ToUpper(countryHint)]
		if !ok {
			errs.Add("phone_number", fmt.Sprintf("unknown country code %q", countryHint))
		} else if !strings.HasPrefix(cleaned, "+"+dial) {
			errs.Add("phone_number", fmt.Sprintf("phone number does not match country %s (+%s)", strings.ToUpper(countryHint), dial))
		}
	}

	return errs
}

// MessageOptions controla os limites de ValidateMessage.
type MessageOptions struct {
	MaxLength  int
	MinLength  int
	AllowHTML  bool
	AllowEmoji bool
}

// DefaultMessageOptions: limites usados pelo gateway para corpo de texto.
func DefaultMessageOptions() MessageOptions {
	return MessageOptions{MaxLength: 1000, MinLength: 1, AllowHTML: false, AllowEmoji: true}
}

// ValidateMessage valida o corpo de uma mensagem. Comprimento é contado em
// code points, não em bytes. Substrings de script/handlers são rejeitadas
// sempre, independente das flags (defesa em profundidade, não sanitizador).
func (v *Validator) ValidateMessage(message string, opts MessageOptions) Result {
	errs := Result{}

	if opts.MaxLength <= 0 {
		opts.MaxLength = 1000
	}
	if opts.MinLength <= 0 {
		opts.MinLength = 1
	}

	length := utf8.RuneCountInString(message)
	if length < opts.MinLength {
		errs.Add("message", fmt.Sprintf("message must have at least %d characters", opts.MinLength))
	}
	if length > opts.MaxLength {
		errs.Add("message", fmt.Sprintf("message must not exceed %d characters", opts.MaxLength))
	}

	if !opts.AllowHTML && htmlTagPattern.ReplaceAllString(message, "") != message {
		errs.Add("message", "message must not contain HTML")
	}

	if !opts.AllowEmoji && containsEmoji(message) {
		errs.Add("message", "message must not contain emoji")
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "<script") ||
		strings.Contains(lower, "javascript:") ||
		strings.Contains(lower, "vbscript:") ||
		eventAttrPattern.MatchString(message) {
		errs.Add("message", "message contains disallowed content")
	}

	return errs
}

func containsEmoji(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x1F300 && r <= 0x1F9FF: // símbolos e pictogramas
			return true
		case r >= 0x2600 && r <= 0x27BF: // misc symbols + dingbats
			return true
		case r >= 0x1F1E0 && r <= 0x1F1FF: // bandeiras
			return true
		}
	}
	return false
}

// ValidateBusinessHours exige exatamente os sete dias da semana, horários
// HH:MM e rejeita janela degenerada (open == close habilitado fora da
// sentinela 00:00/00:00).
func (v *Validator) ValidateBusinessHours(hours map[string]entity.DayHours) Result {
	errs := Result{}

	known := map[string]bool{}
	for _, day := range entity.Weekdays {
		known[day] = true
		if _, ok := hours[day]; !ok {
			errs.Add("business_hours."+day, "day is required")
		}
	}
	for day := range hours {
		if !known[day] {
			errs.Add("business_hours."+day, "unknown weekday")
		}
	}

	for _, day := range entity.Weekdays {
		dh, ok := hours[day]
		if !ok {
			continue
		}
		prefix := "business_hours." + day
		if !timePattern.MatchString(dh.Open) {
			errs.Add(prefix+".open", fmt.Sprintf("invalid time %q, expected HH:MM", dh.Open))
		}
		if !timePattern.MatchString(dh.Close) {
			errs.Add(prefix+".close", fmt.Sprintf("invalid time %q, expected HH:MM", dh.Close))
		}
		if dh.Enabled && dh.Open == dh.Close && dh.Open != "00:00" {
			errs.Add(prefix, "open and close must differ for an enabled day")
		}
	}

	return errs
}

// ValidateColor aceita kind hex, rgb ou css (hex ∨ rgb ∨ cor nomeada).
func (v *Validator) ValidateColor(color, kind string) Result {
	errs := Result{}
	color = strings.TrimSpace(color)

	switch kind {
	case "hex":
		if !hexColorPattern.MatchString(color) {
			errs.Add("color", "must be a hex color like #25D366")
		}
	case "rgb":
		if !rgbColorPattern.MatchString(color) {
			errs.Add("color", "must be an rgb color like rgb(37, 211, 102)")
		}
	case "css":
		if !hexColorPattern.MatchString(color) &&
			!rgbColorPattern.MatchString(color) &&
			!namedColors[strings.ToLower(color)] {
			errs.Add("color", "must be a hex, rgb or named CSS color")
		}
	default:
		errs.Add("color", fmt.Sprintf("unknown color kind %q", kind))
	}

	return errs
}

// URLOptions controla os limites de ValidateURL.
type URLOptions struct {
	Schemes   []string
	MaxLength int
}

func DefaultURLOptions() URLOptions {
	return URLOptions{Schemes: []string{"http", "https"}, MaxLength: 2048}
}

// ValidateURL exige URL bem formada, scheme na allow-list e host não vazio.
func (v *Validator) ValidateURL(raw string, opts URLOptions) Result {
	errs := Result{}

	if len(opts.Schemes) == 0 {
		opts.Schemes = []string{"http", "https"}
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = 2048
	}

	if strings.TrimSpace(raw) == "" {
		errs.Add("url", "url is required")
		return errs
	}
	if len(raw) > opts.MaxLength {
		errs.Add("url", fmt.Sprintf("url must not exceed %d characters", opts.MaxLength))
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		errs.Add("url", "url is malformed")
		return errs
	}
	if parsed.Host == "" {
		errs.Add("url", "url must have a host")
	}

	allowed := false
	for _, scheme := range opts.Schemes {
		if strings.EqualFold(parsed.Scheme, scheme) {
			allowed = true
			break
		}
	}
	if !allowed {
		errs.Add("url", fmt.Sprintf("url scheme must be one of %s", strings.Join(opts.Schemes, ", ")))
	}

	return errs
}

// ValidateEmail: formato básico mais os limites de tamanho RFC (local 64,
// domínio 253).
func (v *Validator) ValidateEmail(email string) Result {
	errs := Result{}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "email is required")
		return errs
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add("email", "email is invalid")
		return errs
	}

	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	if len(local) > 64 {
		errs.Add("email", "email local part must not exceed 64 characters")
	}
	if len(domain) > 253 {
		errs.Add("email", "email domain must not exceed 253 characters")
	}
	if !strings.Contains(domain, ".") {
		errs.Add("email", "email domain is invalid")
	}

	return errs
}
