package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

func gatewayAt(settings entity.Settings, now time.Time) *MessageGateway {
	g := NewMessageGateway(&stubConfig{settings: settings}, validation.New(), nil, nil, nil, nil, "", "")
	g.Now = func() time.Time { return now }
	return g
}

func TestIsBusinessOpen(t *testing.T) {
	settings := configuredSettings()

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"segunda 10:00 dentro da janela", time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), true},
		{"segunda 09:00 no limite de abertura", time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), true},
		{"segunda 18:00 no limite de fechamento", time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC), true},
		{"segunda 20:00 fora da janela", time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC), false},
		{"segunda 08:59 antes de abrir", time.Date(2026, 8, 24, 8, 59, 0, 0, time.UTC), false},
		{"sábado 11:00 janela reduzida", time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC), true},
		{"domingo sempre fechado", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gatewayAt(settings, tc.now)
			assert.Equal(t, tc.want, g.IsBusinessOpen(context.Background()))
		})
	}
}

func TestIsBusinessOpenSentinel(t *testing.T) {
	settings := configuredSettings()
	// 00:00/00:00 é sentinela de fechado, mesmo com enabled=true
	settings.BusinessHours["monday"] = entity.DayHours{Open: "00:00", Close: "00:00", Enabled: true}

	g := gatewayAt(settings, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	assert.False(t, g.IsBusinessOpen(context.Background()))
}

func TestIsBusinessOpenMissingDay(t *testing.T) {
	settings := configuredSettings()
	delete(settings.BusinessHours, "monday")

	g := gatewayAt(settings, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC))
	assert.False(t, g.IsBusinessOpen(context.Background()))
}

func TestIsBusinessOpenDisabledDay(t *testing.T) {
	settings := configuredSettings()
	settings.BusinessHours["monday"] = entity.DayHours{Open: "09:00", Close: "18:00", Enabled: false}

	g := gatewayAt(settings, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC))
	assert.False(t, g.IsBusinessOpen(context.Background()))
}

func TestIsBusinessOpenNoOvernightWraparound(t *testing.T) {
	settings := configuredSettings()
	settings.BusinessHours["monday"] = entity.DayHours{Open: "22:00", Close: "02:00", Enabled: true}

	g := gatewayAt(settings, time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC))
	assert.False(t, g.IsBusinessOpen(context.Background()))
}
