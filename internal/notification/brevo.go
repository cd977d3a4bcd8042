package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoNotifier sends transactional OTP emails through the Brevo SMTP API.
type BrevoNotifier struct {
	apiKey      string
	senderEmail string
	endpoint    string
	client      *http.Client
}

// NewBrevoNotifier builds a notifier backed by the Brevo API.
func NewBrevoNotifier(apiKey, senderEmail string) *BrevoNotifier {
	return &BrevoNotifier{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		endpoint:    defaultBrevoEndpoint,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoSender      `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

// Send posts the OTP email. A non-2xx response fails the enclosing operation.
func (n *BrevoNotifier) Send(ctx context.Context, message Message) error {
	subject, title, description, footer := content(message.Purpose)

	payload := brevoPayload{
		Sender:      brevoSender{Name: "Hirely Platform", Email: n.senderEmail},
		To:          []brevoRecipient{{Email: message.To}},
		Subject:     subject,
		HTMLContent: renderHTML(title, description, footer, message.OTP),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("api-key", n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send email: provider returned status %d", resp.StatusCode)
	}
	return nil
}

func content(purpose string) (subject, title, description, footer string) {
	if purpose == PurposeResetPassword {
		return "RESET YOUR HIRELY PASSWORD",
			"Reset your password",
			"Use the OTP below to reset your Hirely password",
			"If you didn't request a password reset, you can safely ignore this email."
	}
	return "VERIFY YOUR HIRELY EMAIL",
		"Verify your email",
		"Use the OTP below to complete your Hirely signup",
		"If you didn't create a Hirely account, you can safely ignore this email."
}

func renderHTML(title, description, footer, otp string) string {
	return fmt.Sprintf(`<div style="font-family:Arial,Helvetica,sans-serif;padding:24px;">
  <h2>%s</h2>
  <p>%s</p>
  <div style="font-size:26px;font-weight:800;letter-spacing:6px;">%s</div>
  <p>This OTP is valid for <b>10 minutes</b></p>
  <p style="font-size:12px;color:#555555;">%s</p>
</div>`, title, description, otp, footer)
}
