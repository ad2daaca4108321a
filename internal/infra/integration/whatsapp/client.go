package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL da Graph API do Meta.
const DefaultBaseURL = "https://graph.facebook.com/v18.0"

// Client fala com a WhatsApp Business API. As credenciais vêm da
// configuração do tenant a cada chamada; o client só guarda transporte.
type Client struct {
	baseURL string
	http    *http.Client
	pace    *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithPacing limita o ritmo de chamadas de saída (token bucket), para não
// grudar no rate limit do próprio Meta.
func WithPacing(perSecond float64, burst int) Option {
	return func(c *Client) { c.pace = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		// espera limitada: estourou o timeout, vira http_error lá em cima
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage faz o POST /{phoneNumberID}/messages. Erro de transporte
// (timeout, DNS, TLS) volta como error; resposta do provedor, boa ou ruim,
// volta classificada no SendResult.
func (c *Client) SendMessage(ctx context.Context, creds Credentials, payload map[string]any) (*SendResult, error) {
	if c.pace != nil {
		if err := c.pace.Wait(ctx); err != nil {
			return nil, fmt.Errorf("pacing cancelado: %w", err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, creds.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	c.setHeaders(req, creds)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na chamada whatsapp: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("erro ao parsear resposta: %w", err)
	}

	result := &SendResult{StatusCode: resp.StatusCode}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Err = parsed.Error
		if result.Err == nil {
			result.Err = &APIError{Message: "unknown provider error", Code: resp.StatusCode}
		}
		log.Printf("❌ WhatsApp: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return result, nil
	}

	if parsed.Error != nil {
		result.Err = parsed.Error
		log.Printf("❌ WhatsApp: erro na API: %s (code %d)", parsed.Error.Message, parsed.Error.Code)
		return result, nil
	}

	if len(parsed.Messages) > 0 {
		result.MessageID = parsed.Messages[0].ID
	}
	return result, nil
}

// CheckStatus valida as credenciais contra o /me da Graph API.
func (c *Client) CheckStatus(ctx context.Context, creds Credentials) error {
	var parsed statusResponse
	if err := c.get(ctx, creds, c.baseURL+"/me", &parsed); err != nil {
		return err
	}
	if parsed.Error != nil {
		return fmt.Errorf("whatsapp api: %s (code %d)", parsed.Error.Message, parsed.Error.Code)
	}
	return nil
}

// GetPhoneNumberInfo busca os metadados de um phone number id.
func (c *Client) GetPhoneNumberInfo(ctx context.Context, creds Credentials, phoneNumberID string) (*PhoneNumberInfo, error) {
	var parsed phoneNumberInfoResponse
	if err := c.get(ctx, creds, c.baseURL+"/"+phoneNumberID, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("whatsapp api: %s (code %d)", parsed.Error.Message, parsed.Error.Code)
	}

	return &PhoneNumberInfo{
		ID:                 parsed.ID,
		DisplayPhoneNumber: parsed.DisplayPhoneNumber,
		VerifiedName:       parsed.VerifiedName,
		QualityRating:      parsed.QualityRating,
	}, nil
}

func (c *Client) get(ctx context.Context, creds Credentials, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, creds)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na chamada whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao parsear resposta: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, creds Credentials) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
}
