package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/queue"
	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
)

// DispatchQueueInterface enfileira envios diferidos para o worker.
type DispatchQueueInterface interface {
	PublishDispatch(ctx context.Context, payload queue.DispatchPayload) error
}

// DispatchHandler recebe os cliques nas URLs assinadas de envio diferido.
type DispatchHandler struct {
	Gateway *usecase.MessageGateway
	Queue   DispatchQueueInterface
}

func NewDispatchHandler(gateway *usecase.MessageGateway, q DispatchQueueInterface) *DispatchHandler {
	return &DispatchHandler{Gateway: gateway, Queue: q}
}

// Handle (GET /wa/dispatch?payload=&ts=&token=)
// Com fila configurada o envio é assíncrono (202); sem fila, manda na hora.
func (h *DispatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	payload, err := h.Gateway.DecodeDispatchURL(query.Get("payload"), query.Get("ts"), query.Get("token"))
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_TOKEN", err.Error())
		return
	}

	if h.Queue != nil {
		job := queue.DispatchPayload{
			Phone:       payload.Phone,
			Message:     payload.Message,
			MessageType: entity.MessageTypeText,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Queue.PublishDispatch(r.Context(), job); err != nil {
			log.Printf("❌ dispatch: falha enfileirando envio: %v", err)
			writeErrorResponse(w, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "could not enqueue the message")
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}

	result := h.Gateway.SendText(r.Context(), payload.Phone, entity.TextMessage{Body: payload.Message})
	writeJSON(w, dispatchStatus(result), result)
}
