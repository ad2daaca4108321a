package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogStatusSent   = "sent"
	LogStatusFailed = "failed"
)

// MessageLog é a linha plana gravada por envio (sucesso ou falha).
type MessageLog struct {
	ID                string    `json:"id"`
	PhoneNumber       string    `json:"phone_number"`
	MessageType       string    `json:"message_type"`
	Message           string    `json:"message"`
	Status            string    `json:"status"`
	ProviderMessageID string    `json:"provider_message_id,omitempty"`
	ErrorCode         string    `json:"error_code,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewMessageLog(phone, messageType, message, status string) *MessageLog {
	return &MessageLog{
		ID:          uuid.New().String(),
		PhoneNumber: phone,
		MessageType: messageType,
		Message:     message,
		Status:      status,
		CreatedAt:   time.Now(),
	}
}
