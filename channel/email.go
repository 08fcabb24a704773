package channel

import (
	"fmt"
	"net/smtp"

	"wellmind/storage"
)

// SMTPConfig is the outgoing mail endpoint, shared by all users.
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	From     string `json:"from"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Email struct {
	cfg SMTPConfig
	// send is swappable for tests; defaults to smtp.SendMail
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(cfg SMTPConfig) *Email {
	return &Email{cfg: cfg, send: smtp.SendMail}
}

func (e *Email) Send(prefs *storage.Preferences, text string) error {
	if prefs.Email == "" {
		return ErrNotConfigured
	}

	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: A note from wellmind\r\n\r\n%s\r\n",
		e.cfg.From, prefs.Email, text)
	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	return e.send(addr, auth, e.cfg.From, []string{prefs.Email}, []byte(msg))
}
