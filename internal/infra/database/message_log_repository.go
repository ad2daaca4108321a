package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

// MessageLogRepository grava o log plano de envios na whatsapp_messages.
type MessageLogRepository struct {
	DB *sql.DB
}

func NewMessageLogRepository(db *sql.DB) *MessageLogRepository {
	return &MessageLogRepository{DB: db}
}

func (r *MessageLogRepository) Save(ctx context.Context, log *entity.MessageLog) error {
	query := `
		INSERT INTO whatsapp_messages (
			id, phone_number, message_type, message, status,
			provider_message_id, error_code, created_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		log.ID,
		log.PhoneNumber,
		log.MessageType,
		log.Message,
		log.Status,
		log.ProviderMessageID,
		log.ErrorCode,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao gravar log de mensagem: %w", err)
	}

	return nil
}

// Recent devolve os últimos envios, mais novos primeiro.
func (r *MessageLogRepository) Recent(ctx context.Context, limit int) ([]entity.MessageLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, phone_number, message_type, message, status,
		       COALESCE(provider_message_id, ''), COALESCE(error_code, ''), created_at
		FROM whatsapp_messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar log de mensagens: %w", err)
	}
	defer rows.Close()

	var logs []entity.MessageLog
	for rows.Next() {
		var l entity.MessageLog
		if err := rows.Scan(&l.ID, &l.PhoneNumber, &l.MessageType, &l.Message,
			&l.Status, &l.ProviderMessageID, &l.ErrorCode, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
