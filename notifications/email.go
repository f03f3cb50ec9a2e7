package notifications

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/hmcts/et-multiples-api/templates/html"
)

// Notifier sends caseworker-facing emails about bulk action outcomes
type Notifier interface {
	SendBulkSummary(to, multipleRef, action string, processed int, errs []string) error
}

// SendgridNotifier sends mail through sendgrid
type SendgridNotifier struct {
	APIKey string
	From   string
}

// NewSendgridNotifier returns a notifier using the given api key and sender
func NewSendgridNotifier(apiKey, from string) *SendgridNotifier {
	return &SendgridNotifier{APIKey: apiKey, From: from}
}

// SendBulkSummary emails the outcome of a bulk action: how many member cases
// were processed and which case references failed.
func (s *SendgridNotifier) SendBulkSummary(to, multipleRef, action string, processed int, errs []string) error {
	if to == "" {
		return nil
	}

	subject := "Multiple " + multipleRef + ": " + action + " completed"
	if len(errs) > 0 {
		subject = "Multiple " + multipleRef + ": " + action + " completed with errors"
	}

	htmlContent, plainText := templates.BulkSummaryEmail(multipleRef, action, processed, errs)

	from := mail.NewEmail("Employment Tribunals", s.From)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
