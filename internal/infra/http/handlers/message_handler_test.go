package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

type stubConfig struct {
	settings entity.Settings
}

func (s *stubConfig) GetAll(ctx context.Context) entity.Settings {
	return s.settings.Clone()
}

type stubAPI struct {
	result *whatsapp.SendResult
	err    error
}

func (s *stubAPI) SendMessage(ctx context.Context, creds whatsapp.Credentials, payload map[string]any) (*whatsapp.SendResult, error) {
	return s.result, s.err
}

type stubLimiter struct {
	allow bool
}

func (s *stubLimiter) Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) bool {
	return s.allow
}

func testSettings() entity.Settings {
	settings := entity.DefaultSettings()
	settings.Enabled = true
	settings.APIKey = "test-api-key-12345"
	settings.PhoneNumberID = "111222333"
	settings.BusinessName = "Ligue"
	return settings
}

func testGateway(api usecase.WhatsAppAPI, limiterAllow bool) *usecase.MessageGateway {
	g := usecase.NewMessageGateway(
		&stubConfig{settings: testSettings()},
		validation.New(),
		&stubLimiter{allow: limiterAllow},
		api,
		nil,
		nil,
		"https://example.com",
		"segredo-de-teste",
	)
	// segunda 10:00, dentro do horário comercial padrão
	g.Now = func() time.Time { return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) }
	return g
}

func newRouter(g *usecase.MessageGateway) *chi.Mux {
	h := NewMessageHandler(g)
	u := NewURLHandler(g)
	d := NewDispatchHandler(g, nil)

	r := chi.NewRouter()
	r.Post("/api/messages/{type}", h.SendHandler)
	r.Get("/api/templates/{name}", h.TemplateHandler)
	r.Get("/api/whatsapp-url", u.Handle)
	r.Get("/wa/dispatch", d.Handle)
	return r
}

func TestSendHandlerText(t *testing.T) {
	api := &stubAPI{result: &whatsapp.SendResult{StatusCode: 200, MessageID: "wamid.h1"}}
	router := newRouter(testGateway(api, true))

	body := `{"to":"+5511999998888","text":{"body":"Olá!"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages/text", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wamid.h1")
}

func TestSendHandlerInvalidJSON(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodPost, "/api/messages/text", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendHandlerUnknownType(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodPost, "/api/messages/video", strings.NewReader(`{"to":"+5511999998888"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendHandlerMissingVariantBody(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodPost, "/api/messages/text", strings.NewReader(`{"to":"+5511999998888"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendHandlerRateLimited(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, false))

	body := `{"to":"+5511999998888","text":{"body":"Olá!"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages/text", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestSendHandlerValidationError(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	body := `{"to":"+5511999998888","text":{"body":""}}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages/text", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), entity.ErrKindValidation)
}

func TestTemplateHandler(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodGet, "/api/templates/welcome", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ligue")
}

func TestURLHandlerUsesUserAgent(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp-url?phone=%2B1234567890&message=Hola", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "whatsapp://send?phone=1234567890")
}

func TestURLHandlerMissingPhone(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp-url?message=Hola", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatchHandlerRejectsBadToken(t *testing.T) {
	router := newRouter(testGateway(&stubAPI{}, true))

	req := httptest.NewRequest(http.MethodGet, "/wa/dispatch?payload=abc&ts=123&token=def", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDispatchHandlerDirectSend(t *testing.T) {
	api := &stubAPI{result: &whatsapp.SendResult{StatusCode: 200, MessageID: "wamid.d1"}}
	g := testGateway(api, true)
	router := newRouter(g)

	signed, err := g.GenerateWhatsAppURL(context.Background(), "+5511999998888", "Hola", usecase.URLKindAPI)
	assert.NoError(t, err)

	path := strings.TrimPrefix(signed, "https://example.com")
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wamid.d1")
}
