package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

type smtpSettings struct {
	host          string
	port          int
	user          string
	pass          string
	from          string
	skipTLSVerify bool
}

// loadSMTP reads the mail settings at send time, so values from a
// .env file loaded in main are picked up. When SMTP_FROM is unset
// the sender falls back to a display name around SMTP_USER.
func loadSMTP() smtpSettings {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	s := smtpSettings{
		host:          os.Getenv("SMTP_HOST"),
		port:          port,
		user:          os.Getenv("SMTP_USER"),
		pass:          os.Getenv("SMTP_PASS"),
		from:          os.Getenv("SMTP_FROM"), // e.g. "Grant System <no-reply@your.org>"
		skipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
	if s.from == "" && s.user != "" {
		s.from = fmt.Sprintf("Grant Management <%s>", s.user)
	}
	return s
}

func SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}

	s := loadSMTP()
	if s.host == "" || s.from == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_USER)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(s.host, s.port, s.user, s.pass)

	// Mandatory STARTTLS on port 587 (Gmail/Office365).
	d.StartTLSPolicy = mail.MandatoryStartTLS

	d.TLSConfig = &tls.Config{
		ServerName:         s.host,
		InsecureSkipVerify: s.skipTLSVerify, // dev only: set SMTP_SKIP_TLS_VERIFY=1 to skip cert checks
	}

	return d.DialAndSend(m)
}
