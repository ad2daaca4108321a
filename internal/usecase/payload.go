package usecase

import (
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
)

// buildPayload monta o corpo JSON no formato da Graph API. Botões e listas
// viajam como mensagens "interactive"; o resto vai direto no tipo nomeado.
func buildPayload(msg entity.OutboundMessage) map[string]any {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                msg.To,
	}

	switch msg.Type {
	case entity.MessageTypeText:
		payload["type"] = "text"
		payload["text"] = map[string]any{
			"body":        msg.Text.Body,
			"preview_url": msg.Text.PreviewURL,
		}

	case entity.MessageTypeImage:
		image := map[string]any{"link": msg.Image.URL}
		if msg.Image.Caption != "" {
			image["caption"] = msg.Image.Caption
		}
		payload["type"] = "image"
		payload["image"] = image

	case entity.MessageTypeDocument:
		document := map[string]any{
			"link":     msg.Document.URL,
			"filename": msg.Document.Filename,
		}
		if msg.Document.Caption != "" {
			document["caption"] = msg.Document.Caption
		}
		payload["type"] = "document"
		payload["document"] = document

	case entity.MessageTypeButton:
		buttons := make([]map[string]any, 0, len(msg.Button.Buttons))
		for _, b := range msg.Button.Buttons {
			buttons = append(buttons, map[string]any{
				"type":  "reply",
				"reply": map[string]any{"id": b.ID, "title": b.Title},
			})
		}
		interactive := map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": msg.Button.Body},
			"action": map[string]any{"buttons": buttons},
		}
		if msg.Button.Header != "" {
			interactive["header"] = map[string]any{"type": "text", "text": msg.Button.Header}
		}
		payload["type"] = "interactive"
		payload["interactive"] = interactive

	case entity.MessageTypeList:
		sections := make([]map[string]any, 0, len(msg.List.Sections))
		for _, section := range msg.List.Sections {
			rows := make([]map[string]any, 0, len(section.Rows))
			for _, row := range section.Rows {
				r := map[string]any{"id": row.ID, "title": row.Title}
				if row.Description != "" {
					r["description"] = row.Description
				}
				rows = append(rows, r)
			}
			sections = append(sections, map[string]any{
				"title": section.Title,
				"rows":  rows,
			})
		}
		interactive := map[string]any{
			"type":   "list",
			"body":   map[string]any{"text": msg.List.Body},
			"action": map[string]any{"button": msg.List.ButtonLabel, "sections": sections},
		}
		if msg.List.Header != "" {
			interactive["header"] = map[string]any{"type": "text", "text": msg.List.Header}
		}
		payload["type"] = "interactive"
		payload["interactive"] = interactive
	}

	return payload
}
