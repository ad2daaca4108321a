package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DispatchPayload é o envio diferido que espera na fila até o worker
// processar. Vem das URLs de callback assinadas.
type DispatchPayload struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
	RequestedAt string `json:"requested_at"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{
		Conn: conn,
		Ch:   ch,
	}
}

// PublishDispatch enfileira um envio diferido de forma durável.
func (p *Producer) PublishDispatch(ctx context.Context, payload DispatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.whatsapp
		RoutingKey,   // k.dispatch
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}

// Publish implementa o sink de eventos do core sobre o exchange de
// notificações. Eventos são efêmeros: sem persistência, sem DLQ.
func (p *Producer) Publish(ctx context.Context, name string, payload map[string]any) error {
	envelope := map[string]any{
		"event":       name,
		"payload":     payload,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		NotifyExchangeName,
		NotifyRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar evento no RabbitMQ: %v", err)
	}

	return nil
}
