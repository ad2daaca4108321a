package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var notificationTemplate = template.Must(template.New("notification").Parse(`
<h2>{{.BusinessName}} - alerta do WhatsApp</h2>
<p>Evento: <strong>{{.Event}}</strong></p>
{{if .Kind}}<p>Categoria: {{.Kind}}</p>{{end}}
{{if .Phone}}<p>Destinatário: {{.Phone}}</p>{{end}}
<p>Quando: {{.OccurredAt}}</p>
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendNotification(to, subject string, data NotificationEmailData) error {
	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
