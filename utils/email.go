package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() *EmailConfig {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return &EmailConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an email using SMTP. Returns an error when SMTP is not
// configured.
func SendEmail(to, subject, body string) error {
	config := loadEmailConfig()
	if config == nil {
		return fmt.Errorf("SMTP not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// NotifyOrderUpdate emails the counterparty about an order change. Delivery
// is best effort: failures are logged, never surfaced to the request.
func NotifyOrderUpdate(to, offerTitle, status string) {
	if loadEmailConfig() == nil {
		return
	}
	subject := fmt.Sprintf("%s: order update for %q", AppName, offerTitle)
	body := fmt.Sprintf("<p>Your order for <b>%s</b> is now <b>%s</b>.</p>", offerTitle, status)
	if err := SendEmail(to, subject, body); err != nil {
		LogError("Failed to send order notification to %s: %v", to, err)
	}
}
