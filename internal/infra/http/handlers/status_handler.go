package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-whatsapp/internal/config"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
)

// StatusHandler checa as credenciais configuradas contra a API do Meta.
type StatusHandler struct {
	Store  *config.Store
	Client *whatsapp.Client
}

func NewStatusHandler(store *config.Store, client *whatsapp.Client) *StatusHandler {
	return &StatusHandler{Store: store, Client: client}
}

// Handle (GET /api/whatsapp/status)
func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	settings := h.Store.GetAll(r.Context())
	if settings.APIKey == "" || settings.PhoneNumberID == "" {
		writeErrorResponse(w, http.StatusServiceUnavailable, "NOT_CONFIGURED", "WhatsApp API credentials are not configured")
		return
	}

	creds := whatsapp.Credentials{APIKey: settings.APIKey, PhoneNumberID: settings.PhoneNumberID}

	if err := h.Client.CheckStatus(r.Context(), creds); err != nil {
		middleware.RecordIntegrationError("whatsapp")
		writeErrorResponse(w, http.StatusBadGateway, "API_UNAVAILABLE", err.Error())
		return
	}

	info, err := h.Client.GetPhoneNumberInfo(r.Context(), creds, settings.PhoneNumberID)
	if err != nil {
		middleware.RecordIntegrationError("whatsapp")
		writeErrorResponse(w, http.StatusBadGateway, "API_UNAVAILABLE", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "connected",
		"phone_number": info,
	})
}
