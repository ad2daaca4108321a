package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// OptionRepository é o option store durável: chave string -> JSON, uma linha
// por opção, upsert na escrita.
//
// Schema esperado:
//
//	CREATE TABLE whatsapp_options (
//	    option_key   TEXT PRIMARY KEY,
//	    option_value JSONB NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type OptionRepository struct {
	DB *sql.DB
}

func NewOptionRepository(db *sql.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

// Get devolve o JSON bruto da opção, ou fallback quando não existe.
func (r *OptionRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	query := `SELECT option_value FROM whatsapp_options WHERE option_key = $1`

	var value string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("option get %s: %w", key, err)
	}
	return value, nil
}

func (r *OptionRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO whatsapp_options (option_key, option_value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (option_key)
		DO UPDATE SET option_value = EXCLUDED.option_value, updated_at = now()
	`

	if _, err := r.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("option set %s: %w", key, err)
	}
	return nil
}

func (r *OptionRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM whatsapp_options WHERE option_key = $1`

	if _, err := r.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("option delete %s: %w", key, err)
	}
	return nil
}
