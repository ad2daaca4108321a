package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
)

// ConfigProvider entrega o snapshot completo de configuração do tenant.
type ConfigProvider interface {
	GetAll(ctx context.Context) entity.Settings
}

// WhatsAppAPI é o contrato com a Graph API: erro Go é falha de transporte,
// SendResult.Err é rejeição do provedor.
type WhatsAppAPI interface {
	SendMessage(ctx context.Context, creds whatsapp.Credentials, payload map[string]any) (*whatsapp.SendResult, error)
}

type RateLimiterInterface interface {
	Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) bool
}

type MessageLogRepositoryInterface interface {
	Save(ctx context.Context, entry *entity.MessageLog) error
}

type EventSinkInterface interface {
	Publish(ctx context.Context, name string, payload map[string]any) error
}
