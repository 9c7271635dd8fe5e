package jobs

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends staff notification mail through a configured relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewSMTPMailer constructs a mailer. Delivery target is the staff inbox.
func NewSMTPMailer(host string, port int, username, password, from, to string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from, to: to}
}

// Send delivers one plain-text message.
func (m *SMTPMailer) Send(subject, body string) error {
	if m.host == "" || m.to == "" {
		return errors.New("mailer: not configured")
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{m.to}, []byte(msg.String()))
}

var _ Sender = (*SMTPMailer)(nil)
