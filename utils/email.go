// utils/email.go
package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOTPEmail delivers a recovery code to the user's inbox.
func SendOTPEmail(to, code string) error {
	return sendMail(to, "Your verification code",
		fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))
}

// SendResetLinkEmail delivers a password reset link built from the token.
func SendResetLinkEmail(to, token string) error {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return sendMail(to, "Reset your password",
		fmt.Sprintf("Open the link below to choose a new password:\n\n%s/reset-password?token=%s\n\nThe link expires in one hour.", base, token))
}

func sendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	return d.DialAndSend(m)
}
