package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

// MessageDispatcher é o contrato com o gateway de envio: o worker só sabe
// entregar mensagens de texto diferidas.
type MessageDispatcher interface {
	SendText(ctx context.Context, to string, msg entity.TextMessage) entity.DispatchResult
}

type Worker struct {
	Channel    *amqp.Channel
	Dispatcher MessageDispatcher
}

func NewWorker(ch *amqp.Channel, dispatcher MessageDispatcher) *Worker {
	return &Worker{
		Channel:    ch,
		Dispatcher: dispatcher,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Envio diferido recebido do RabbitMQ")

			var payload DispatchPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processando envio para: %s", payload.Phone)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no envio: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Mensagem entregue para %s.", payload.Phone)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload DispatchPayload) error {
	result := w.Dispatcher.SendText(ctx, payload.Phone, entity.TextMessage{Body: payload.Message})
	if result.Success {
		return nil
	}

	// Qualquer recusa manda a mensagem para a DLQ; requeue automático só
	// faria a fila girar em vazio fora do horário comercial.
	return &DispatchError{Kind: result.Error.Kind, Message: result.Error.Message}
}

// DispatchError carrega a categoria da recusa para o log do worker.
type DispatchError struct {
	Kind    string
	Message string
}

func (e *DispatchError) Error() string {
	return e.Kind + ": " + e.Message
}
