package config

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

// ExportPayload é o formato portável da configuração. Segredos (API key)
// são removidos antes de serializar e nunca saem daqui.
type ExportPayload struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Config     map[string]any `json:"config"`
}

// Export devolve a configuração atual sem a API key.
func (s *Store) Export(ctx context.Context) ExportPayload {
	tree := s.GetAll(ctx).ToMap()
	delete(tree, "api_key")

	return ExportPayload{
		Version:    entity.SchemaVersion,
		ExportedAt: time.Now().UTC(),
		Config:     tree,
	}
}

// Import valida o payload antes de aceitar: o shape exportado precisa bater
// com os campos obrigatórios do schema atual, e os valores passam pela
// mesma validação de SetAll.
func (s *Store) Import(ctx context.Context, payload ExportPayload) bool {
	if payload.Config == nil {
		s.recordErrors(validation.Result{"config": {"import payload has no config"}})
		return false
	}

	shapeErrs := validation.Result{}
	for _, field := range requiredImportFields {
		if _, ok := validation.Lookup(payload.Config, field); !ok {
			shapeErrs.Add(field, "is missing from import payload")
		}
	}
	if !shapeErrs.Valid() {
		s.recordErrors(shapeErrs)
		return false
	}

	settings := entity.SettingsFromMap(payload.Config)

	errs := s.validator.ValidateConfig(SettingsSchema(), settings.ToMap())
	errs.Merge(s.validator.ValidateBusinessHours(settings.BusinessHours))
	if !errs.Valid() {
		s.recordErrors(errs)
		return false
	}

	return s.persist(ctx, settings.ToMap())
}
