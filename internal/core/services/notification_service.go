package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"time"

	"linka-backend/internal/config"
)

// Notifier sends out-of-band messages to users. Delivery is best effort;
// callers never block on it.
type Notifier interface {
	SendVerificationEmail(email, fullName string)
	SendVerificationSMS(phoneNumber string)
	SendPasswordReset(email, fullName, temporaryPassword string)
	SendTransactionConfirmation(email, fullName, reference string, amount float64)
}

// NotificationService sends email via SMTP and SMS via an HTTP gateway
type NotificationService struct {
	cfg          config.NotifyConfig
	client       *http.Client
	emailEnabled bool
	smsEnabled   bool
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		cfg:          cfg,
		client:       &http.Client{Timeout: 10 * time.Second},
		emailEnabled: cfg.SMTPHost != "",
		smsEnabled:   cfg.SMSEndpoint != "",
	}
}

// sendEmail delivers a plain-text email over SMTP
func (s *NotificationService) sendEmail(to, subject, body string) {
	if !s.emailEnabled {
		log.Printf("📧 Email disabled, skipping: %s -> %s", subject, to)
		return
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.EmailFrom, to, subject, body)

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.EmailFrom, []string{to}, []byte(msg)); err != nil {
		log.Printf("⚠️ Email delivery failed to %s: %v", to, err)
	}
}

// sendSMS posts a message to the SMS gateway
func (s *NotificationService) sendSMS(phoneNumber, message string) {
	if !s.smsEnabled {
		log.Printf("📱 SMS disabled, skipping: %s", phoneNumber)
		return
	}

	payload, err := json.Marshal(map[string]string{
		"to":      phoneNumber,
		"message": message,
	})
	if err != nil {
		log.Printf("⚠️ SMS payload error: %v", err)
		return
	}

	req, err := http.NewRequest("POST", s.cfg.SMSEndpoint, bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("⚠️ SMS request error: %v", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.SMSAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ SMS delivery failed to %s: %v", phoneNumber, err)
		return
	}
	defer resp.Body.Close()
}

// SendVerificationEmail sends the email verification link
func (s *NotificationService) SendVerificationEmail(email, fullName string) {
	body := fmt.Sprintf(`Hello %s,

Welcome to Linka! Please verify your email address to activate your account:

%s/api/v1/auth/verify-email

If you did not create this account, ignore this message.`,
		fullName,
		s.cfg.VerifyBaseURL,
	)

	s.sendEmail(email, "Verify your Linka account", body)
}

// SendVerificationSMS sends the phone verification message
func (s *NotificationService) SendVerificationSMS(phoneNumber string) {
	s.sendSMS(phoneNumber, "Welcome to Linka! Verify your phone number to activate your account.")
}

// SendPasswordReset sends a temporary password
func (s *NotificationService) SendPasswordReset(email, fullName, temporaryPassword string) {
	body := fmt.Sprintf(`Hello %s,

Your password has been reset. Use this temporary password to log in, then change it immediately:

%s

If you did not request this, contact support.`,
		fullName,
		temporaryPassword,
	)

	s.sendEmail(email, "Your Linka password reset", body)
}

// SendTransactionConfirmation confirms a completed transaction
func (s *NotificationService) SendTransactionConfirmation(email, fullName, reference string, amount float64) {
	body := fmt.Sprintf(`Hello %s,

Your transaction %s for UGX %.2f has been completed.

Thank you for using Linka.`,
		fullName,
		reference,
		amount,
	)

	s.sendEmail(email, "Transaction completed", body)
}
