package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

// IsBusinessOpen resolve o dia da semana e o horário local contra a tabela
// de atendimento configurada. Janela inclusiva nos dois extremos, sem
// suporte a virada de dia (close < open nunca abre).
func (g *MessageGateway) IsBusinessOpen(ctx context.Context) bool {
	return g.businessOpen(g.Config.GetAll(ctx))
}

func (g *MessageGateway) businessOpen(settings entity.Settings) bool {
	now := g.Now()
	weekday := strings.ToLower(now.Weekday().String())

	day, ok := settings.BusinessHours[weekday]
	if !ok || day.Closed() {
		return false
	}

	open, err := parseClock(day.Open)
	if err != nil {
		return false
	}
	close, err := parseClock(day.Close)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	return current >= open && current <= close
}

// parseClock converte "HH:MM" em minutos desde a meia-noite.
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
