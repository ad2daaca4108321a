package usecase

import (
	"context"
	"strings"
)

// GetTemplateMessage resolve um template pelo nome (cai no "default" se não
// existir) e substitui os placeholders {chave}. Além das variáveis do
// chamador, {business_name}, {current_date} e {current_time} estão sempre
// disponíveis.
func (g *MessageGateway) GetTemplateMessage(ctx context.Context, name string, vars map[string]string) string {
	settings := g.Config.GetAll(ctx)

	template, ok := settings.Templates[name]
	if !ok {
		template = settings.Templates["default"]
	}
	if template == "" {
		return ""
	}

	now := g.Now()
	replacements := map[string]string{
		"business_name": settings.BusinessName,
		"current_date":  now.Format("02/01/2006"),
		"current_time":  now.Format("15:04"),
	}
	for key, value := range vars {
		replacements[key] = value
	}

	for key, value := range replacements {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}
	return template
}
