package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
)

type URLHandler struct {
	Gateway *usecase.MessageGateway
}

func NewURLHandler(gateway *usecase.MessageGateway) *URLHandler {
	return &URLHandler{Gateway: gateway}
}

// Handle (GET /api/whatsapp-url?phone=&message=&kind=)
// Sem kind explícito, o user-agent decide entre o deep link e o wa.me.
func (h *URLHandler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	message := r.URL.Query().Get("message")
	kind := r.URL.Query().Get("kind")

	if phone == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_PHONE", "phone is required")
		return
	}

	device := usecase.DetectDevice(r.UserAgent())
	if kind == "" {
		kind = usecase.URLKindWeb
		if device == usecase.DeviceMobile {
			kind = usecase.URLKindMobile
		}
	}

	url, err := h.Gateway.GenerateWhatsAppURL(r.Context(), phone, message, kind)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":    url,
		"kind":   kind,
		"device": device,
	})
}
