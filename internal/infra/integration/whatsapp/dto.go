package whatsapp

// Credentials do tenant, resolvidas da configuração a cada chamada.
type Credentials struct {
	APIKey        string
	PhoneNumberID string
}

// APIError é o erro estruturado que a Graph API devolve no corpo.
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// SendResult é a resposta classificada de um POST /messages. Err preenchido
// significa que o provedor rejeitou a mensagem (o transporte funcionou).
type SendResult struct {
	StatusCode int
	MessageID  string
	Err        *APIError
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *APIError `json:"error"`
}

type statusResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Error *APIError `json:"error"`
}

type phoneNumberInfoResponse struct {
	ID                 string    `json:"id"`
	DisplayPhoneNumber string    `json:"display_phone_number"`
	VerifiedName       string    `json:"verified_name"`
	QualityRating      string    `json:"quality_rating"`
	Error              *APIError `json:"error"`
}

// PhoneNumberInfo é o retorno público do lookup de número.
type PhoneNumberInfo struct {
	ID                 string `json:"id"`
	DisplayPhoneNumber string `json:"display_phone_number"`
	VerifiedName       string `json:"verified_name"`
	QualityRating      string `json:"quality_rating"`
}
