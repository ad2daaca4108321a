package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	controlCharPattern = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	scriptBlockPattern = regexp.MustCompile(`(?is)<script.*?</script>`)
	colorCharPattern   = regexp.MustCompile(`[^#0-9A-Za-z(),\s]`)
	urlSpacePattern    = regexp.MustCompile(`[\s\x00-\x1F]`)
	filenameBadPattern = regexp.MustCompile(`[^0-9A-Za-z._-]`)
)

// Sanitize transforma o valor conforme o tipo pedido, removendo caracteres
// não permitidos. Não valida: input ruim vira output limpo, não erro.
// Tipos: text, html, url, phone, color, int, float, bool, array, filename.
func (v *Validator) Sanitize(value any, kind string) any {
	switch kind {
	case "text":
		s := toString(value)
		s = htmlTagPattern.ReplaceAllString(s, "")
		s = controlCharPattern.ReplaceAllString(s, "")
		return strings.TrimSpace(s)

	case "html":
		s := toString(value)
		s = scriptBlockPattern.ReplaceAllString(s, "")
		s = eventAttrPattern.ReplaceAllString(s, "data-removed=")
		s = strings.ReplaceAll(s, "javascript:", "")
		s = strings.ReplaceAll(s, "vbscript:", "")
		return controlCharPattern.ReplaceAllString(s, "")

	case "url":
		return urlSpacePattern.ReplaceAllString(toString(value), "")

	case "phone":
		s := phoneCleanPattern.ReplaceAllString(toString(value), "")
		if s != "" && !strings.HasPrefix(s, "+") {
			s = "+" + s
		}
		return s

	case "color":
		return strings.TrimSpace(colorCharPattern.ReplaceAllString(toString(value), ""))

	case "int":
		switch n := value.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		case string:
			i, _ := strconv.Atoi(strings.TrimSpace(n))
			return i
		default:
			return 0
		}

	case "float":
		switch n := value.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case string:
			f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
			return f
		default:
			return 0.0
		}

	case "bool":
		switch b := value.(type) {
		case bool:
			return b
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "1", "true", "yes", "on":
				return true
			}
			return false
		case int:
			return b != 0
		case float64:
			return b != 0
		default:
			return false
		}

	case "array":
		arr, ok := value.([]any)
		if !ok {
			return []any{}
		}
		out := make([]any, 0, len(arr))
		for _, item := range arr {
			out = append(out, v.Sanitize(item, "text"))
		}
		return out

	case "filename":
		s := filepath.Base(toString(value))
		s = filenameBadPattern.ReplaceAllString(s, "_")
		return strings.Trim(s, "._")

	default:
		return v.Sanitize(value, "text")
	}
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
