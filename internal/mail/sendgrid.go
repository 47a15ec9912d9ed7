package mail

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"holdco-backend/internal/model"
)

// Client sends transactional email through SendGrid. A nil-configured
// client (empty API key) logs instead of sending, so local development
// works without credentials.
type Client struct {
	apiKey   string
	from     string
	siteURL  string
	leadsTo  string
	fromName string
}

// NewClient reads SendGrid configuration from the environment.
func NewClient() *Client {
	return &Client{
		apiKey:   os.Getenv("SENDGRID_API_KEY"),
		from:     getenv("MAIL_FROM", "no-reply@holdco.example"),
		fromName: getenv("MAIL_FROM_NAME", "Holding Group"),
		siteURL:  getenv("SITE_URL", "http://localhost:3000"),
		leadsTo:  os.Getenv("LEADS_NOTIFY_TO"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Client) send(_ context.Context, to, subject, body string) error {
	if c.apiKey == "" {
		log.Printf("[mail] (dry-run) to=%s subject=%q", to, subject)
		return nil
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := sgmail.NewEmail(c.fromName, c.from)
	toEmail := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(fromEmail, subject, toEmail, body, fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("[mail] error status=%d body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	log.Printf("[mail] sent: status=%d to=%s subject=%q", response.StatusCode, to, subject)
	return nil
}

// SendVerification mails the email-verification link created at signup.
func (c *Client) SendVerification(ctx context.Context, to, uid, token string) error {
	link := fmt.Sprintf("%s/verify-user/%s/%s", c.siteURL, uid, token)
	body := "Welcome!\n\nPlease confirm your email address by opening the link below:\n\n" + link +
		"\n\nIf you did not create an account, ignore this message."
	return c.send(ctx, to, "Confirm your email address", body)
}

// SendPasswordReset mails the forgot-password link.
func (c *Client) SendPasswordReset(ctx context.Context, to, uid, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s/%s", c.siteURL, uid, token)
	body := "A password reset was requested for your account.\n\nOpen the link below to choose a new password:\n\n" + link +
		"\n\nIf you did not request this, ignore this message."
	return c.send(ctx, to, "Reset your password", body)
}

// SendLeadNotification notifies the internal sales inbox about a new lead.
// Skipped when LEADS_NOTIFY_TO is unset.
func (c *Client) SendLeadNotification(ctx context.Context, evt model.LeadAccepted) error {
	if c.leadsTo == "" {
		return nil
	}
	subject := fmt.Sprintf("New %s lead from %s", evt.Kind, evt.Name)
	body := fmt.Sprintf("Lead %s\nKind: %s\nName: %s\nEmail: %s\n\nPayload:\n%s",
		evt.LeadID, evt.Kind, evt.Name, evt.Email, string(evt.Payload))
	return c.send(ctx, c.leadsTo, subject, body)
}
