package notifier

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/velstore/product-intake/config"
	"github.com/velstore/product-intake/pkg/models"
)

const sendTimeout = 5 * time.Second

// NotificationError carries the underlying cause of a failed email send.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "notification failed: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error { return e.Err }

type Notifier interface {
	NotifyInternal(ctx context.Context, sub *models.Submission) error
	NotifyCustomer(ctx context.Context, sub *models.Submission) error
}

// NewNotifier returns a mailersend-backed notifier, or a noop implementation
// when no relay is configured.
func NewNotifier(cfg config.Email) Notifier {
	if !cfg.Configured() {
		return noopNotifier{}
	}
	return &mailersendNotifier{
		ms:  mailersend.NewMailersend(cfg.APIKey),
		cfg: cfg,
	}
}

type noopNotifier struct{}

func (noopNotifier) NotifyInternal(ctx context.Context, sub *models.Submission) error { return nil }
func (noopNotifier) NotifyCustomer(ctx context.Context, sub *models.Submission) error { return nil }

type mailersendNotifier struct {
	ms  *mailersend.Mailersend
	cfg config.Email
}

func (n *mailersendNotifier) NotifyInternal(ctx context.Context, sub *models.Submission) error {
	subject := "New product submission: " + sub.Name
	return n.send(ctx, subject, renderInternalText(sub), renderInternalHTML(sub), n.cfg.InternalTo)
}

func (n *mailersendNotifier) NotifyCustomer(ctx context.Context, sub *models.Submission) error {
	if sub.Email == "" {
		return nil
	}
	subject := "We received your product submission"
	return n.send(ctx, subject, renderCustomerText(sub), renderCustomerHTML(sub), sub.Email)
}

func (n *mailersendNotifier) send(ctx context.Context, subject, text, htmlBody, toEmail string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	from := mailersend.From{
		Name:  n.cfg.FromName,
		Email: n.cfg.FromEmail,
	}
	recipients := []mailersend.Recipient{
		{
			Email: toEmail,
		},
	}

	message := n.ms.Email.NewMessage()
	message.SetFrom(from)
	message.SetRecipients(recipients)
	message.SetSubject(subject)
	message.SetHTML(htmlBody)
	message.SetText(text)

	if _, err := n.ms.Email.Send(ctx, message); err != nil {
		return &NotificationError{Err: err}
	}
	return nil
}

// All user-supplied values are escaped before interpolation so a submission
// cannot inject markup into the rendered email.
func renderInternalHTML(sub *models.Submission) string {
	var b strings.Builder
	b.WriteString("<h2>New product submission</h2>")
	b.WriteString("<p><strong>Name:</strong> " + html.EscapeString(sub.Name) + "</p>")
	b.WriteString("<p><strong>Contact:</strong> " + html.EscapeString(sub.Contact) + "</p>")
	if sub.Email != "" {
		b.WriteString("<p><strong>Email:</strong> " + html.EscapeString(sub.Email) + "</p>")
	} else {
		b.WriteString("<p><strong>Email:</strong> not provided</p>")
	}
	b.WriteString("<p><strong>Product links:</strong></p><ul>")
	for _, link := range sub.ProductLinks {
		b.WriteString("<li>" + html.EscapeString(link) + "</li>")
	}
	b.WriteString("</ul>")
	b.WriteString("<p><strong>Images:</strong></p><ul>")
	for _, url := range sub.ImageURLs {
		b.WriteString("<li>" + html.EscapeString(url) + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func renderInternalText(sub *models.Submission) string {
	var b strings.Builder
	b.WriteString("New product submission\n")
	b.WriteString("Name: " + sub.Name + "\n")
	b.WriteString("Contact: " + sub.Contact + "\n")
	if sub.Email != "" {
		b.WriteString("Email: " + sub.Email + "\n")
	} else {
		b.WriteString("Email: not provided\n")
	}
	b.WriteString("Product links:\n")
	for _, link := range sub.ProductLinks {
		b.WriteString("  - " + link + "\n")
	}
	b.WriteString("Images:\n")
	for _, url := range sub.ImageURLs {
		b.WriteString("  - " + url + "\n")
	}
	return b.String()
}

func renderCustomerHTML(sub *models.Submission) string {
	var b strings.Builder
	b.WriteString("<h2>Thanks for your submission, " + html.EscapeString(sub.Name) + "!</h2>")
	b.WriteString("<p>We received your products and our team will review them shortly.</p>")
	b.WriteString("<p>In the meantime, enjoy 10% off your next order with code <strong>WELCOME10</strong>.</p>")
	return b.String()
}

func renderCustomerText(sub *models.Submission) string {
	return "Thanks for your submission, " + sub.Name + "!\n" +
		"We received your products and our team will review them shortly.\n" +
		"In the meantime, enjoy 10% off your next order with code WELCOME10.\n"
}
