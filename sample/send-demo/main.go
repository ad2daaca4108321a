package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/xavierca1/ligue-whatsapp/internal/config"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/events"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-whatsapp/internal/ratelimit"
	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

// memOptions guarda as opções em memória: a demo não precisa de Postgres.
type memOptions struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memOptions) Get(_ context.Context, key, fallback string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (m *memOptions) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memOptions) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	apiKey := os.Getenv("WHATSAPP_API_KEY")
	phoneNumberID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	to := os.Getenv("DEMO_TO")
	if apiKey == "" || phoneNumberID == "" || to == "" {
		log.Fatal("❌ WHATSAPP_API_KEY, WHATSAPP_PHONE_NUMBER_ID e DEMO_TO devem estar configurados no .env")
	}

	ctx := context.Background()
	validator := validation.New()
	memory := cache.NewMemory()

	store := config.NewStore(&memOptions{data: map[string]string{}}, memory, validator, events.NewLogSink())

	settings := entity.DefaultSettings()
	settings.Enabled = true
	settings.APIKey = apiKey
	settings.PhoneNumberID = phoneNumberID
	settings.BusinessName = "Demo"
	if !store.SetAll(ctx, settings) {
		log.Fatalf("❌ Configuração inválida: %v", store.LastErrors())
	}

	gateway := usecase.NewMessageGateway(
		store, validator, ratelimit.New(memory), whatsapp.NewClient(),
		nil, events.NewLogSink(), "", "",
	)

	fmt.Println("🔄 Enviando mensagem de teste...")
	message := gateway.GetTemplateMessage(ctx, "welcome", nil)

	result := gateway.SendText(ctx, to, entity.TextMessage{Body: message})
	if !result.Success {
		log.Fatalf("❌ Envio recusado (%s): %s", result.Error.Kind, result.Error.Message)
	}

	fmt.Printf("✅ Mensagem aceita! ID do provedor: %s\n", result.MessageID)

	url, err := gateway.GenerateWhatsAppURL(ctx, to, message, usecase.URLKindWeb)
	if err == nil {
		fmt.Printf("🔗 Link direto: %s\n", url)
	}
}
