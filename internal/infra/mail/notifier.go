package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

// SettingsProvider entrega o snapshot de configuração na hora do evento,
// para honrar mudanças de preferência sem reiniciar o processo.
type SettingsProvider interface {
	GetAll(ctx context.Context) entity.Settings
}

// ErrorNotifier assina os eventos do core e manda email para o admin quando
// as notificações estão habilitadas para aquele evento.
type ErrorNotifier struct {
	sender *EmailSender
	config SettingsProvider
}

func NewErrorNotifier(sender *EmailSender, config SettingsProvider) *ErrorNotifier {
	return &ErrorNotifier{
		sender: sender,
		config: config,
	}
}

func (n *ErrorNotifier) Publish(ctx context.Context, name string, payload map[string]any) error {
	settings := n.config.GetAll(ctx)

	if !settings.Notifications.EmailNotifications {
		return nil
	}
	if !settings.Notifications.NotificationEvents[name] {
		return nil
	}
	if settings.Notifications.AdminEmail == "" {
		log.Printf("⚠️ mail: notificações habilitadas mas admin_email vazio")
		return nil
	}

	data := NotificationEmailData{
		BusinessName: settings.BusinessName,
		Event:        name,
	}
	if kind, ok := payload["kind"].(string); ok {
		data.Kind = kind
	}
	if phone, ok := payload["to"].(string); ok {
		data.Phone = phone
	}
	if at, ok := payload["occurred_at"].(string); ok {
		data.OccurredAt = at
	}

	subject := fmt.Sprintf("[WhatsApp] %s", name)
	if err := n.sender.SendNotification(settings.Notifications.AdminEmail, subject, data); err != nil {
		log.Printf("⚠️ mail: falha enviando notificação %s: %v", name, err)
		return err
	}

	return nil
}
