package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Tipos de URL de clique-para-conversar.
const (
	URLKindWeb    = "web"
	URLKindMobile = "mobile"
	URLKindAPI    = "api"
)

// dispatchTokenTTL é a janela de frescor das URLs de envio diferido.
const dispatchTokenTTL = 15 * time.Minute

// DispatchPayload é o conteúdo assinado que viaja na URL de callback.
type DispatchPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// GenerateWhatsAppURL é formatação pura, sem chamada de rede. "web" e
// "mobile" apontam direto para o WhatsApp; "api" monta a URL de callback
// assinada para envio diferido pelo servidor.
func (g *MessageGateway) GenerateWhatsAppURL(ctx context.Context, phone, message, kind string) (string, error) {
	formatted := g.Validator.FormatPhoneNumber(phone)
	if formatted == "" {
		return "", fmt.Errorf("número de telefone inválido: %q", phone)
	}
	digits := strings.TrimPrefix(formatted, "+")

	switch kind {
	case URLKindWeb:
		return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message), nil

	case URLKindMobile:
		return "whatsapp://send?phone=" + digits + "&text=" + url.QueryEscape(message), nil

	case URLKindAPI:
		if g.CallbackBaseURL == "" || g.TokenSecret == "" {
			return "", fmt.Errorf("callback de envio diferido não configurado")
		}

		raw, err := json.Marshal(DispatchPayload{Phone: formatted, Message: message})
		if err != nil {
			return "", fmt.Errorf("erro ao serializar payload: %w", err)
		}
		payload := base64.RawURLEncoding.EncodeToString(raw)
		ts := strconv.FormatInt(g.Now().Unix(), 10)

		values := url.Values{}
		values.Set("payload", payload)
		values.Set("ts", ts)
		values.Set("token", g.signDispatch(payload, ts))

		return strings.TrimRight(g.CallbackBaseURL, "/") + "/wa/dispatch?" + values.Encode(), nil

	default:
		return "", fmt.Errorf("tipo de URL desconhecido: %q", kind)
	}
}

// DecodeDispatchURL valida assinatura e frescor de uma URL de envio diferido
// e devolve o payload original.
func (g *MessageGateway) DecodeDispatchURL(payload, ts, token string) (*DispatchPayload, error) {
	expected := g.signDispatch(payload, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return nil, fmt.Errorf("token de dispatch inválido")
	}

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("timestamp de dispatch inválido")
	}

	age := g.Now().Sub(time.Unix(issued, 0))
	if age < 0 || age > dispatchTokenTTL {
		return nil, fmt.Errorf("token de dispatch expirado")
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("payload de dispatch inválido")
	}

	var out DispatchPayload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("payload de dispatch inválido")
	}
	return &out, nil
}

func (g *MessageGateway) signDispatch(payload, ts string) string {
	mac := hmac.New(sha256.New, []byte(g.TokenSecret))
	mac.Write([]byte(payload + "|" + ts))
	return hex.EncodeToString(mac.Sum(nil))
}
