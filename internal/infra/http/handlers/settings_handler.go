package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-whatsapp/internal/config"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

type SettingsHandler struct {
	Store *config.Store
}

func NewSettingsHandler(store *config.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// GetHandler (GET /api/settings) devolve o snapshot sem a credencial.
func (h *SettingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	settings := h.Store.GetAll(r.Context())
	settings.APIKey = ""

	writeJSON(w, http.StatusOK, settings)
}

// PutHandler (PUT /api/settings) troca a configuração inteira.
func (h *SettingsHandler) PutHandler(w http.ResponseWriter, r *http.Request) {
	var input entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if !h.Store.SetAll(r.Context(), input) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": h.Store.LastErrors(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PatchHandler (PATCH /api/settings) atualiza um campo por vez.
func (h *SettingsHandler) PatchHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if input.Key == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_KEY", "key is required")
		return
	}

	if !h.Store.Set(r.Context(), input.Key, input.Value) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": h.Store.LastErrors(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExportHandler (GET /api/settings/export) serializa a configuração sem
// segredos.
func (h *SettingsHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Export(r.Context()))
}

// ImportHandler (POST /api/settings/import)
func (h *SettingsHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var payload config.ExportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if !h.Store.Import(r.Context(), payload) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "import_rejected",
			"fields": h.Store.LastErrors(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MigrateHandler (POST /api/settings/migrate) aplica a cadeia de migrações.
func (h *SettingsHandler) MigrateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if !h.Store.Migrate(r.Context(), input.From, input.To) {
		writeErrorResponse(w, http.StatusConflict, "MIGRATION_FAILED", "could not migrate between the requested versions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "schema_version": input.To})
}

// ClearCacheHandler (POST /api/settings/clear-cache)
func (h *SettingsHandler) ClearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if !h.Store.ClearCache(r.Context()) {
		writeErrorResponse(w, http.StatusServiceUnavailable, "CACHE_UNAVAILABLE", "could not clear the external cache")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetHandler (POST /api/settings/reset) volta para os defaults embutidos.
func (h *SettingsHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if !h.Store.ResetToDefaults(r.Context()) {
		writeErrorResponse(w, http.StatusInternalServerError, "RESET_FAILED", "could not reset the configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
