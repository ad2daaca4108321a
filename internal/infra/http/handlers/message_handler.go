package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
)

type MessageHandler struct {
	Gateway *usecase.MessageGateway
}

func NewMessageHandler(gateway *usecase.MessageGateway) *MessageHandler {
	return &MessageHandler{Gateway: gateway}
}

type sendRequest struct {
	To       string                  `json:"to"`
	Text     *entity.TextMessage     `json:"text,omitempty"`
	Image    *entity.ImageMessage    `json:"image,omitempty"`
	Document *entity.DocumentMessage `json:"document,omitempty"`
	Button   *entity.ButtonMessage   `json:"button,omitempty"`
	List     *entity.ListMessage     `json:"list,omitempty"`
}

// SendHandler (POST /api/messages/{type})
func (h *MessageHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	messageType := chi.URLParam(r, "type")

	var input sendRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	var result entity.DispatchResult
	ctx := r.Context()

	switch messageType {
	case entity.MessageTypeText:
		if input.Text == nil {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_BODY", "text is required")
			return
		}
		result = h.Gateway.SendText(ctx, input.To, *input.Text)

	case entity.MessageTypeImage:
		if input.Image == nil {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_BODY", "image is required")
			return
		}
		result = h.Gateway.SendImage(ctx, input.To, *input.Image)

	case entity.MessageTypeDocument:
		if input.Document == nil {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_BODY", "document is required")
			return
		}
		result = h.Gateway.SendDocument(ctx, input.To, *input.Document)

	case entity.MessageTypeButton:
		if input.Button == nil {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_BODY", "button is required")
			return
		}
		result = h.Gateway.SendButton(ctx, input.To, *input.Button)

	case entity.MessageTypeList:
		if input.List == nil {
			writeErrorResponse(w, http.StatusBadRequest, "MISSING_BODY", "list is required")
			return
		}
		result = h.Gateway.SendList(ctx, input.To, *input.List)

	default:
		writeErrorResponse(w, http.StatusNotFound, "UNKNOWN_TYPE", "unknown message type: "+messageType)
		return
	}

	writeJSON(w, dispatchStatus(result), result)
}

// dispatchStatus mapeia a taxonomia de erro do core para status HTTP.
func dispatchStatus(result entity.DispatchResult) int {
	if result.Success {
		return http.StatusOK
	}

	switch result.Error.Kind {
	case entity.ErrKindValidation:
		return http.StatusUnprocessableEntity
	case entity.ErrKindRateLimit:
		return http.StatusTooManyRequests
	case entity.ErrKindBusinessOff:
		return http.StatusConflict
	case entity.ErrKindConfig:
		return http.StatusServiceUnavailable
	case entity.ErrKindHTTP, entity.ErrKindAPI:
		middleware.RecordIntegrationError("whatsapp")
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// TemplateHandler (GET /api/templates/{name}) resolve um template com as
// variáveis passadas na query string.
func (h *MessageHandler) TemplateHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	vars := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			vars[key] = values[0]
		}
	}

	message := h.Gateway.GetTemplateMessage(r.Context(), name, vars)
	if message == "" {
		writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "no template configured")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": name, "message": message})
}
