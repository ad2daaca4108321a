package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldRule descreve a regra declarativa de um campo do schema.
type FieldRule struct {
	Required  bool
	Type      string // string, bool, int, float, map, array
	MinLength int
	MaxLength int
	Pattern   string
	Enum      []string
}

// Schema mapeia caminho de campo (com ponto para aninhamento) para sua regra.
// O validador de schema opera sobre a árvore genérica (map[string]any), não
// sobre as structs tipadas.
type Schema map[string]FieldRule

// ValidateConfig percorre o schema inteiro e agrega todos os erros de campo
// em um único Result, sem short-circuit.
func (v *Validator) ValidateConfig(schema Schema, config map[string]any) Result {
	errs := Result{}

	for _, path := range sortedPaths(schema) {
		rule := schema[path]
		value, found := Lookup(config, path)

		if !found || value == nil {
			if rule.Required {
				errs.Add(path, "is required")
			}
			continue
		}

		validateField(errs, path, rule, value)
	}

	return errs
}

func validateField(errs Result, path string, rule FieldRule, value any) {
	switch rule.Type {
	case "", "string":
		s, ok := value.(string)
		if !ok {
			if rule.Type != "" {
				errs.Add(path, "must be a string")
			}
			return
		}
		if strings.TrimSpace(s) == "" {
			if rule.Required {
				errs.Add(path, "is required")
			}
			// string opcional vazia não passa pelos checks de formato
			return
		}
		length := utf8.RuneCountInString(s)
		if rule.MinLength > 0 && length < rule.MinLength {
			errs.Add(path, fmt.Sprintf("must have at least %d characters", rule.MinLength))
		}
		if rule.MaxLength > 0 && length > rule.MaxLength {
			errs.Add(path, fmt.Sprintf("must not exceed %d characters", rule.MaxLength))
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err == nil && s != "" && !re.MatchString(s) {
				errs.Add(path, "has an invalid format")
			}
		}
		if len(rule.Enum) > 0 && s != "" {
			ok := false
			for _, e := range rule.Enum {
				if s == e {
					ok = true
					break
				}
			}
			if !ok {
				errs.Add(path, fmt.Sprintf("must be one of %s", strings.Join(rule.Enum, ", ")))
			}
		}

	case "bool":
		if _, ok := value.(bool); !ok {
			errs.Add(path, "must be a boolean")
		}

	case "int":
		// valores vindos de JSON chegam como float64
		switch n := value.(type) {
		case int, int32, int64:
		case float64:
			if n != float64(int64(n)) {
				errs.Add(path, "must be an integer")
			}
		default:
			errs.Add(path, "must be an integer")
		}

	case "float":
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			errs.Add(path, "must be a number")
		}

	case "map":
		if _, ok := value.(map[string]any); !ok {
			errs.Add(path, "must be an object")
		}

	case "array":
		if _, ok := value.([]any); !ok {
			errs.Add(path, "must be an array")
		}

	default:
		errs.Add(path, fmt.Sprintf("unknown rule type %q", rule.Type))
	}
}


// Lookup resolve um caminho dot-separated na árvore genérica.
func Lookup(tree map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = tree

	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// sortedPaths dá ordem estável aos erros agregados.
func sortedPaths(schema Schema) []string {
	paths := make([]string, 0, len(schema))
	for p := range schema {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
