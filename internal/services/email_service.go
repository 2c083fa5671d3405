package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	// Enabled — настроен ли SMTP. В dev-режиме письма уходят только в лог,
	// и хендлеры могут вернуть токен сброса прямо в ответе.
	Enabled() bool
	SendVerificationEmail(to, name, verifyURL string) error
	SendPasswordResetEmail(to, resetURL string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService — SMTP-отправка через gomail; без конфигурации SMTP
// возвращает log-only вариант (регистрация не должна падать из-за почты).
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, configured bool) EmailService {
	if !configured {
		return &logEmailService{}
	}
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *emailService) Enabled() bool { return true }

func (s *emailService) SendVerificationEmail(to, name, verifyURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your account")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Verify your account by clicking: <a href="%s">%s</a></p>
		<p>The link is valid for 24 hours.</p>
	`, name, verifyURL, verifyURL)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(to, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset request")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Reset your password by clicking: <a href="%s">%s</a></p>
		<p>The link is valid for 15 minutes. If you did not request this, ignore this email.</p>
	`, resetURL, resetURL)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

// logEmailService — dev-заглушка: письмо в лог, всегда успех.
type logEmailService struct{}

func (s *logEmailService) Enabled() bool { return false }

func (s *logEmailService) SendVerificationEmail(to, name, verifyURL string) error {
	log.Printf("[mail][dev] verification to=%s url=%s", to, verifyURL)
	return nil
}

func (s *logEmailService) SendPasswordResetEmail(to, resetURL string) error {
	log.Printf("[mail][dev] password reset to=%s url=%s", to, resetURL)
	return nil
}
