package usecase

import (
	"context"
	"log"
	"time"
	"strconv"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

var (
	messagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_messages_sent_total",
			Help: "Total number of WhatsApp messages accepted by the provider",
		},
		[]string{"type"},
	)

	messagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_messages_failed_total",
			Help: "Total number of WhatsApp send attempts that failed",
		},
		[]string{"type", "kind"},
	)
)

// Limites de campo das mensagens interativas, conforme a API do Meta.
const (
	maxReplyButtons     = 3
	maxButtonTitleLen   = 20
	maxListRowsPer      = 10
	maxListTitleLen     = 24
	maxListRowIDLen     = 200
	defaultRateLimitMax = 10
	defaultRateWindow   = 3600 // segundos
)

// MessageGateway orquestra um envio: valida, checa cota e horário, monta o
// payload e chama a API. Cada chamada é independente; o gateway não guarda
// estado entre requisições e pode ser compartilhado entre goroutines.
type MessageGateway struct {
	Config    ConfigProvider
	Validator *validation.Validator
	Limiter   RateLimiterInterface
	API       WhatsAppAPI
	Logs      MessageLogRepositoryInterface
	Events    EventSinkInterface

	// CallbackBaseURL e TokenSecret assinam as URLs de envio diferido.
	CallbackBaseURL string
	TokenSecret     string

	// Now injetável para testar horário comercial e frescor de token.
	Now func() time.Time
}

func NewMessageGateway(
	config ConfigProvider,
	validator *validation.Validator,
	limiter RateLimiterInterface,
	api WhatsAppAPI,
	logs MessageLogRepositoryInterface,
	events EventSinkInterface,
	callbackBaseURL string,
	tokenSecret string,
) *MessageGateway {
	return &MessageGateway{
		Config:          config,
		Validator:       validator,
		Limiter:         limiter,
		API:             api,
		Logs:            logs,
		Events:          events,
		CallbackBaseURL: callbackBaseURL,
		TokenSecret:     tokenSecret,
		Now:             time.Now,
	}
}

func (g *MessageGateway) SendText(ctx context.Context, to string, msg entity.TextMessage) entity.DispatchResult {
	errs := g.Validator.ValidateMessage(msg.Body, validation.DefaultMessageOptions())
	if !errs.Valid() {
		return g.reject(entity.MessageTypeText, errs)
	}

	out := entity.OutboundMessage{To: to, Type: entity.MessageTypeText, Text: &msg}
	return g.dispatch(ctx, out, msg.Body)
}

func (g *MessageGateway) SendImage(ctx context.Context, to string, msg entity.ImageMessage) entity.DispatchResult {
	errs := g.Validator.ValidateURL(msg.URL, validation.DefaultURLOptions())
	if !errs.Valid() {
		return g.reject(entity.MessageTypeImage, errs)
	}

	out := entity.OutboundMessage{To: to, Type: entity.MessageTypeImage, Image: &msg}
	return g.dispatch(ctx, out, msg.Caption)
}

func (g *MessageGateway) SendDocument(ctx context.Context, to string, msg entity.DocumentMessage) entity.DispatchResult {
	errs := g.Validator.ValidateURL(msg.URL, validation.DefaultURLOptions())
	if msg.Filename == "" {
		errs.Add("filename", "is required")
	}
	if !errs.Valid() {
		return g.reject(entity.MessageTypeDocument, errs)
	}

	out := entity.OutboundMessage{To: to, Type: entity.MessageTypeDocument, Document: &msg}
	return g.dispatch(ctx, out, msg.Filename)
}

func (g *MessageGateway) SendButton(ctx context.Context, to string, msg entity.ButtonMessage) entity.DispatchResult {
	errs := g.validateButtons(msg)
	if !errs.Valid() {
		return g.reject(entity.MessageTypeButton, errs)
	}

	out := entity.OutboundMessage{To: to, Type: entity.MessageTypeButton, Button: &msg}
	return g.dispatch(ctx, out, msg.Body)
}

func (g *MessageGateway) SendList(ctx context.Context, to string, msg entity.ListMessage) entity.DispatchResult {
	errs := g.validateList(msg)
	if !errs.Valid() {
		return g.reject(entity.MessageTypeList, errs)
	}

	out := entity.OutboundMessage{To: to, Type: entity.MessageTypeList, List: &msg}
	return g.dispatch(ctx, out, msg.Body)
}

// dispatch é o pipeline compartilhado. A primeira barreira que falha encerra
// o envio: nenhuma chamada HTTP acontece depois de uma recusa.
func (g *MessageGateway) dispatch(ctx context.Context, msg entity.OutboundMessage, summary string) entity.DispatchResult {
	settings := g.Config.GetAll(ctx)

	phone := g.Validator.FormatPhoneNumber(msg.To)
	if phone == "" {
		errs := g.Validator.ValidatePhoneNumber(msg.To, "")
		if errs.Valid() {
			errs.Add("phone_number", "invalid phone number")
		}
		return g.fail(ctx, settings, msg, summary, entity.ErrKindValidation, "invalid destination", errs)
	}
	msg.To = phone

	if !g.checkRateLimit(ctx, settings, phone, 0, 0) {
		return g.fail(ctx, settings, msg, summary, entity.ErrKindRateLimit, "rate limit exceeded for "+phone, nil)
	}

	if !g.businessOpen(settings) {
		return g.fail(ctx, settings, msg, summary, entity.ErrKindBusinessOff, "outside business hours", nil)
	}

	if settings.APIKey == "" || settings.PhoneNumberID == "" {
		return g.fail(ctx, settings, msg, summary, entity.ErrKindConfig, "WhatsApp API credentials are not configured", nil)
	}

	creds := whatsapp.Credentials{APIKey: settings.APIKey, PhoneNumberID: settings.PhoneNumberID}
	result, err := g.API.SendMessage(ctx, creds, buildPayload(msg))
	if err != nil {
		log.Printf("❌ Gateway: falha de transporte enviando para %s: %v", phone, err)
		return g.fail(ctx, settings, msg, summary, entity.ErrKindHTTP, "could not reach the WhatsApp API", nil)
	}

	if result.Err != nil {
		details := map[string]any{
			"status_code":    result.StatusCode,
			"provider_code":  result.Err.Code,
			"provider_error": result.Err.Message,
		}
		res := entity.DispatchFail(entity.ErrKindAPI, "the WhatsApp API rejected the message", details)
		g.finish(ctx, settings, msg, summary, res)
		return res
	}

	res := entity.DispatchOK(result.MessageID)
	g.finish(ctx, settings, msg, summary, res)
	return res
}

// reject curto-circuita antes do pipeline: validação de variante falhou,
// nada foi tentado ainda.
func (g *MessageGateway) reject(messageType string, errs validation.Result) entity.DispatchResult {
	messagesFailed.WithLabelValues(messageType, entity.ErrKindValidation).Inc()
	return entity.DispatchFail(entity.ErrKindValidation, "message failed validation", map[string]any{"fields": errs})
}

func (g *MessageGateway) fail(ctx context.Context, settings entity.Settings, msg entity.OutboundMessage, summary, kind, message string, errs validation.Result) entity.DispatchResult {
	var details map[string]any
	if len(errs) > 0 {
		details = map[string]any{"fields": errs}
	}
	res := entity.DispatchFail(kind, message, details)
	g.finish(ctx, settings, msg, summary, res)
	return res
}

// finish cuida do pós-envio: métricas, log plano e eventos. Nada aqui muda
// o resultado já decidido.
func (g *MessageGateway) finish(ctx context.Context, settings entity.Settings, msg entity.OutboundMessage, summary string, res entity.DispatchResult) {
	if res.Success {
		messagesSent.WithLabelValues(msg.Type).Inc()
		g.publish(ctx, "message_sent", map[string]any{
			"to":         msg.To,
			"type":       msg.Type,
			"message_id": res.MessageID,
		})
	} else {
		messagesFailed.WithLabelValues(msg.Type, res.Error.Kind).Inc()
		g.publish(ctx, "message_error", map[string]any{
			"to":   msg.To,
			"type": msg.Type,
			"kind": res.Error.Kind,
		})
	}

	if g.Logs == nil || !settings.Advanced.LogMessages {
		return
	}

	status := entity.LogStatusSent
	if !res.Success {
		status = entity.LogStatusFailed
	}

	entry := entity.NewMessageLog(msg.To, msg.Type, summary, status)
	entry.ProviderMessageID = res.MessageID
	if res.Error != nil {
		entry.ErrorCode = res.Error.Kind
	}

	if err := g.Logs.Save(ctx, entry); err != nil {
		log.Printf("⚠️ Gateway: falha gravando log de mensagem: %v", err)
		return
	}

	if !res.Success {
		g.publish(ctx, "error_logged", map[string]any{
			"log_id": entry.ID,
			"kind":   res.Error.Kind,
		})
	}
}

func (g *MessageGateway) publish(ctx context.Context, name string, payload map[string]any) {
	if g.Events == nil {
		return
	}
	if err := g.Events.Publish(ctx, name, payload); err != nil {
		log.Printf("⚠️ Gateway: falha publicando evento %s: %v", name, err)
	}
}

// CheckRateLimit expõe o limitador com os overrides da configuração.
// maxRequests/windowSeconds zerados usam o padrão (10 por 3600s); se a
// configuração do tenant traz limites próprios, eles prevalecem.
func (g *MessageGateway) CheckRateLimit(ctx context.Context, identifier string, maxRequests, windowSeconds int) bool {
	settings := g.Config.GetAll(ctx)
	return g.checkRateLimit(ctx, settings, identifier, maxRequests, windowSeconds)
}

func (g *MessageGateway) checkRateLimit(ctx context.Context, settings entity.Settings, identifier string, maxRequests, windowSeconds int) bool {
	if !settings.RateLimit.Enabled {
		return true
	}

	if maxRequests <= 0 {
		maxRequests = defaultRateLimitMax
		if settings.RateLimit.MaxRequestsPerHour > 0 {
			maxRequests = settings.RateLimit.MaxRequestsPerHour
		}
	}
	if windowSeconds <= 0 {
		windowSeconds = defaultRateWindow
		if settings.RateLimit.TimeWindow > 0 {
			windowSeconds = settings.RateLimit.TimeWindow
		}
	}

	if g.Limiter == nil {
		return true
	}
	return g.Limiter.Check(ctx, identifier, maxRequests, time.Duration(windowSeconds)*time.Second)
}

func (g *MessageGateway) validateButtons(msg entity.ButtonMessage) validation.Result {
	errs := g.Validator.ValidateMessage(msg.Body, validation.DefaultMessageOptions())

	if len(msg.Buttons) == 0 {
		errs.Add("buttons", "is required")
	}
	if len(msg.Buttons) > maxReplyButtons {
		errs.Add("buttons", "must not exceed 3 buttons")
	}
	for i, b := range msg.Buttons {
		field := "buttons." + strconv.Itoa(i)
		if b.ID == "" {
			errs.Add(field+".id", "is required")
		}
		if b.Title == "" {
			errs.Add(field+".title", "is required")
		}
		if utf8.RuneCountInString(b.Title) > maxButtonTitleLen {
			errs.Add(field+".title", "must not exceed 20 characters")
		}
	}
	return errs
}

func (g *MessageGateway) validateList(msg entity.ListMessage) validation.Result {
	errs := g.Validator.ValidateMessage(msg.Body, validation.DefaultMessageOptions())

	if msg.ButtonLabel == "" {
		errs.Add("button_label", "is required")
	}
	if len(msg.Sections) == 0 {
		errs.Add("sections", "is required")
	}
	for i, section := range msg.Sections {
		field := "sections." + strconv.Itoa(i)
		if utf8.RuneCountInString(section.Title) > maxListTitleLen {
			errs.Add(field+".title", "must not exceed 24 characters")
		}
		if len(section.Rows) == 0 {
			errs.Add(field+".rows", "is required")
		}
		if len(section.Rows) > maxListRowsPer {
			errs.Add(field+".rows", "must not exceed 10 rows")
		}
		for j, row := range section.Rows {
			rowField := field + ".rows." + strconv.Itoa(j)
			if row.ID == "" {
				errs.Add(rowField+".id", "is required")
			}
			if len(row.ID) > maxListRowIDLen {
				errs.Add(rowField+".id", "must not exceed 200 characters")
			}
			if row.Title == "" {
				errs.Add(rowField+".title", "is required")
			}
			if utf8.RuneCountInString(row.Title) > maxListTitleLen {
				errs.Add(rowField+".title", "must not exceed 24 characters")
			}
		}
	}
	return errs
}
