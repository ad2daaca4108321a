package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testCreds = Credentials{APIKey: "test-key", PhoneNumberID: "12345"}

func TestSendMessageSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "whatsapp", payload["messaging_product"])

		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{{"id": "wamid.xyz"}},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	result, err := client.SendMessage(context.Background(), testCreds, map[string]any{
		"messaging_product": "whatsapp",
		"to":                "+5511999998888",
		"type":              "text",
	})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "wamid.xyz", result.MessageID)
	assert.Nil(t, result.Err)
}

func TestSendMessageProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Invalid recipient", "code": 131026, "type": "OAuthException"},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	result, err := client.SendMessage(context.Background(), testCreds, map[string]any{})

	// rejeição do provedor não é erro de transporte
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Invalid recipient", result.Err.Message)
	assert.Equal(t, 131026, result.Err.Code)
}

func TestSendMessageTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // derruba o listener antes da chamada

	client := NewClient(WithBaseURL(server.URL), WithTimeout(time.Second))

	result, err := client.SendMessage(context.Background(), testCreds, map[string]any{})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCheckStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "998", "name": "Ligue"})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	assert.NoError(t, client.CheckStatus(context.Background(), testCreds))
}

func TestCheckStatusRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Invalid OAuth access token", "code": 190},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	err := client.CheckStatus(context.Background(), testCreds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "code 190")
}

func TestGetPhoneNumberInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/12345", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"id":                   "12345",
			"display_phone_number": "+55 11 99999-8888",
			"verified_name":        "Ligue",
			"quality_rating":       "GREEN",
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	info, err := client.GetPhoneNumberInfo(context.Background(), testCreds, "12345")

	assert.NoError(t, err)
	assert.Equal(t, "Ligue", info.VerifiedName)
	assert.Equal(t, "GREEN", info.QualityRating)
}
