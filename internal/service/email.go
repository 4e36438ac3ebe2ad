package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// emailMessage is a rendered notification ready to hand to a provider.
type emailMessage struct {
	Subject string
	Plain   string
}

func (m emailMessage) HTML() string {
	return "<html><body><pre>" + html.EscapeString(m.Plain) + "</pre></body></html>"
}

// NewEmailService picks the notification provider by name.
func NewEmailService(provider, apiKey, fromEmail, fromName, adminEmail string) (EmailService, error) {
	switch provider {
	case "", "log":
		return NewLogEmailService(adminEmail), nil
	case "sendgrid":
		return NewSendGridEmailService(apiKey, fromEmail, fromName, adminEmail), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", provider)
	}
}

type sendGridEmailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	adminEmail string
}

// NewSendGridEmailService sends every notification to adminEmail through SendGrid.
func NewSendGridEmailService(apiKey, fromEmail, fromName, adminEmail string) EmailService {
	return &sendGridEmailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (s *sendGridEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	return s.send(ctx, emailMessage{Subject: subject, Plain: message})
}

func (s *sendGridEmailService) SendDueSoonDigest(ctx context.Context, orders []domain.PurchaseOrder) error {
	return s.send(ctx, dueSoonDigest(orders))
}

func (s *sendGridEmailService) SendOverdueReport(ctx context.Context, orders []domain.PurchaseOrder) error {
	return s.send(ctx, overdueReport(orders))
}

func (s *sendGridEmailService) SendContactNotification(ctx context.Context, c *domain.ContactSubmission) error {
	return s.send(ctx, contactNotification(c))
}

func (s *sendGridEmailService) send(ctx context.Context, msg emailMessage) error {
	if s.adminEmail == "" {
		logger.FromContext(ctx).Warn("Admin email not configured, notification dropped", "subject", msg.Subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("Admin", s.adminEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Plain, msg.HTML())

	logger.ExternalServiceCall(ctx, "sendgrid", "Send", "subject", msg.Subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "Send", err, "subject", msg.Subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type logEmailService struct {
	adminEmail string
}

// NewLogEmailService writes notifications to the log instead of sending them.
func NewLogEmailService(adminEmail string) EmailService {
	return &logEmailService{adminEmail: adminEmail}
}

func (s *logEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	return s.send(ctx, emailMessage{Subject: subject, Plain: message})
}

func (s *logEmailService) SendDueSoonDigest(ctx context.Context, orders []domain.PurchaseOrder) error {
	return s.send(ctx, dueSoonDigest(orders))
}

func (s *logEmailService) SendOverdueReport(ctx context.Context, orders []domain.PurchaseOrder) error {
	return s.send(ctx, overdueReport(orders))
}

func (s *logEmailService) SendContactNotification(ctx context.Context, c *domain.ContactSubmission) error {
	return s.send(ctx, contactNotification(c))
}

func (s *logEmailService) send(ctx context.Context, msg emailMessage) error {
	logger.FromContext(ctx).Info("Email notification", "to", s.adminEmail, "subject", msg.Subject, "body", msg.Plain)
	return nil
}

func dueSoonDigest(orders []domain.PurchaseOrder) emailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rental(s) are due for return soon:\n\n", len(orders))
	writeOrderLines(&b, orders)
	return emailMessage{
		Subject: fmt.Sprintf("Rentals due soon (%d)", len(orders)),
		Plain:   b.String(),
	}
}

func overdueReport(orders []domain.PurchaseOrder) emailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rental(s) are past their return date:\n\n", len(orders))
	writeOrderLines(&b, orders)
	return emailMessage{
		Subject: fmt.Sprintf("Overdue returns (%d)", len(orders)),
		Plain:   b.String(),
	}
}

func writeOrderLines(b *strings.Builder, orders []domain.PurchaseOrder) {
	for _, po := range orders {
		fmt.Fprintf(b, "- %s  %s (%s)  ends %s\n",
			po.PONumber, po.CustomerName, po.CustomerPhone, po.RentalEnd.Format("2006-01-02"))
	}
}

func contactNotification(c *domain.ContactSubmission) emailMessage {
	subject := c.Subject
	if subject == "" {
		subject = "New inquiry"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", c.Name, c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)
	return emailMessage{
		Subject: "Contact form: " + subject,
		Plain:   b.String(),
	}
}
