package events

import (
	"context"
	"encoding/json"
	"log"
)

// Sink recebe as notificações nomeadas do core (config_updated, message_sent,
// message_error, error_logged). Quem assina decide o que fazer com elas.
type Sink interface {
	Publish(ctx context.Context, name string, payload map[string]any) error
}

// LogSink escreve cada evento no log do processo. É o assinante padrão
// quando nada mais está configurado.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Publish(ctx context.Context, name string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte("{}")
	}
	log.Printf("📥 [EVENTO] %s: %s", name, body)
	return nil
}

// Multi replica cada evento para todos os sinks. Falha de um assinante não
// impede os demais; o primeiro erro é devolvido ao final.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Add registra mais um assinante. Chamar apenas durante a montagem do
// processo, antes do primeiro Publish.
func (m *Multi) Add(sink Sink) {
	m.sinks = append(m.sinks, sink)
}

func (m *Multi) Publish(ctx context.Context, name string, payload map[string]any) error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.Publish(ctx, name, payload); err != nil {
			log.Printf("⚠️ eventos: assinante falhou em %s: %v", name, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}
