package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

type LogRetentionWorker struct {
	db              *sql.DB
	retentionWindow time.Duration
	tickInterval    time.Duration
}

func NewLogRetentionWorker(db *sql.DB) *LogRetentionWorker {
	return &LogRetentionWorker{
		db:              db,
		retentionWindow: 30 * 24 * time.Hour, // logs vivem 30 dias
		tickInterval:    1 * time.Hour,
	}
}

func (w *LogRetentionWorker) Start(ctx context.Context) {
	log.Println("🕒 Log Retention Worker iniciado (janela de 30 dias)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.pruneOldLogs(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Log Retention Worker encerrado")
			return
		case <-ticker.C:
			w.pruneOldLogs(ctx)
		}
	}
}

func (w *LogRetentionWorker) pruneOldLogs(ctx context.Context) {
	query := `
		DELETE FROM whatsapp_messages
		WHERE created_at < NOW() - INTERVAL '30 days'
	`

	result, err := w.db.ExecContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao limpar logs antigos: %v", err)
		return
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return
	}

	if pruned > 0 {
		log.Printf("✅ %d log(s) de mensagem removidos por retenção", pruned)
	}
}
