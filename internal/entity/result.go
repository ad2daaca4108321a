package entity

// Categorias de falha do pipeline de envio.
const (
	ErrKindValidation   = "validation_error"
	ErrKindRateLimit    = "rate_limit_exceeded"
	ErrKindBusinessOff  = "business_closed"
	ErrKindConfig       = "config_error"
	ErrKindHTTP         = "http_error"
	ErrKindAPI          = "api_error"
)

// DispatchError carrega detalhe estruturado suficiente para renderizar erro
// de formulário (validation) ou banner operacional, sem vazar segredos.
type DispatchError struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// DispatchResult é o resultado de um envio. Success e Error nunca coexistem.
type DispatchResult struct {
	Success   bool           `json:"success"`
	MessageID string         `json:"message_id,omitempty"`
	Error     *DispatchError `json:"error,omitempty"`
}

func DispatchOK(messageID string) DispatchResult {
	return DispatchResult{Success: true, MessageID: messageID}
}

func DispatchFail(kind, message string, details map[string]any) DispatchResult {
	return DispatchResult{
		Success: false,
		Error:   &DispatchError{Kind: kind, Message: message, Details: details},
	}
}
