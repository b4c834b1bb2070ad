package notify

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	smtpHost string
	smtpPort string
	username string
	password string
}

func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
	}
}

func (e *SMTPMailer) Send(to, subject, body string) error {
	from := e.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := e.smtpHost + ":" + e.smtpPort

	// STARTTLS on port 587
	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, e.smtpHost)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Quit()

	tlsConfig := &tls.Config{ServerName: e.smtpHost}
	if err := client.StartTLS(tlsConfig); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return nil
}
