package handlers

import (
	"net/http"
	"strconv"

	"github.com/xavierca1/ligue-whatsapp/internal/infra/database"
)

type LogsHandler struct {
	Repo *database.MessageLogRepository
}

func NewLogsHandler(repo *database.MessageLogRepository) *LogsHandler {
	return &LogsHandler{Repo: repo}
}

// Handle (GET /api/logs?limit=50) lista os envios mais recentes.
func (h *LogsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	entries, err := h.Repo.Recent(r.Context(), limit)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "could not read the message log")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}
