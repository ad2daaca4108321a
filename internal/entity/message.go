package entity

// Tipos de mensagem suportados pela API do WhatsApp Business.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeDocument = "document"
	MessageTypeButton   = "button"
	MessageTypeList     = "list"
)

// ReplyButton é um botão de resposta rápida em mensagens interativas.
type ReplyButton struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// TextMessage: corpo simples, com preview de link opcional.
type TextMessage struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

type ImageMessage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type DocumentMessage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Caption  string `json:"caption,omitempty"`
}

type ButtonMessage struct {
	Header  string        `json:"header"`
	Body    string        `json:"body"`
	Buttons []ReplyButton `json:"buttons"`
}

type ListMessage struct {
	Header      string        `json:"header"`
	Body        string        `json:"body"`
	ButtonLabel string        `json:"button_label"`
	Sections    []ListSection `json:"sections"`
}

// OutboundMessage é a união das variantes de envio: exatamente um dos campos
// de conteúdo está preenchido, conforme Type.
type OutboundMessage struct {
	To       string           `json:"to"`
	Type     string           `json:"type"`
	Text     *TextMessage     `json:"text,omitempty"`
	Image    *ImageMessage    `json:"image,omitempty"`
	Document *DocumentMessage `json:"document,omitempty"`
	Button   *ButtonMessage   `json:"button,omitempty"`
	List     *ListMessage     `json:"list,omitempty"`
}
