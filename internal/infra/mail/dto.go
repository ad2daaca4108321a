package mail

type NotificationEmailData struct {
	BusinessName string
	Event        string
	Kind         string
	Phone        string
	OccurredAt   string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
