// Package email sends transactional mail through the Resend HTTP API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// resendEmailRequest is the request payload for the Resend API.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

// resendErrorResponse is an error body from the Resend API.
type resendErrorResponse struct {
	Message string `json:"message"`
}

// ResendMailer implements the Mailer port over the Resend API.
type ResendMailer struct {
	apiKey          string
	from            string
	frontendBaseURL string
	client          *http.Client
}

var _ portssvc.Mailer = (*ResendMailer)(nil)

// NewResendMailer builds a mailer from config. It returns nil when no API
// key is configured; callers treat a nil Mailer as mail disabled.
func NewResendMailer(cfg *config.Config) *ResendMailer {
	if cfg.ResendAPIKey == "" {
		return nil
	}
	return &ResendMailer{
		apiKey:          cfg.ResendAPIKey,
		from:            cfg.EmailFrom,
		frontendBaseURL: cfg.FrontendBaseURL,
		client:          &http.Client{Timeout: 15 * time.Second},
	}
}

// SendVerificationEmail mails the account verification link.
func (m *ResendMailer) SendVerificationEmail(ctx context.Context, to string, username string, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendBaseURL, token)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome! Please confirm your email address by clicking the link below:</p><p><a href="%s">Verify your email</a></p><p>If you did not create an account, you can ignore this message.</p>`,
		username, link,
	)
	return m.send(ctx, to, "Verify your email address", html)
}

// SendPasswordResetEmail mails the password reset link. The token expires
// after an hour.
func (m *ResendMailer) SendPasswordResetEmail(ctx context.Context, to string, username string, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendBaseURL, token)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>We received a request to reset your password. The link below is valid for one hour:</p><p><a href="%s">Reset your password</a></p><p>If you did not request this, you can ignore this message.</p>`,
		username, link,
	)
	return m.send(ctx, to, "Reset your password", html)
}

func (m *ResendMailer) send(ctx context.Context, to string, subject string, html string) error {
	payload := resendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errorResp resendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}
