package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"

	"doll-web/pkg/models"
)

// ErrMailNotConfigured is returned by Mailer.Notify when SMTP settings are
// incomplete.
var ErrMailNotConfigured = errors.New("SMTP settings missing")

// SMTPSettings configures the contact notification email.
type SMTPSettings struct {
	Host string
	Port int
	User string
	Pass string
	To   string
	From string
}

// Mailer emails contact submissions to the team over SMTP.
type Mailer struct {
	cfg  SMTPSettings
	send func(ctx context.Context, msg *mail.Msg) error
}

var _ Notifier = (*Mailer)(nil)

func NewMailer(cfg SMTPSettings) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) Configured() bool {
	c := m.cfg
	return c.Host != "" && c.Port != 0 && c.User != "" && c.Pass != "" && c.To != ""
}

func (m *Mailer) Notify(ctx context.Context, p models.ContactPayload) error {
	if !m.Configured() {
		return ErrMailNotConfigured
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	msg, err := ComposeContactEmail(from, m.cfg.To, p)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

// dialAndSend delivers msg. Port 465 expects TLS from the first byte;
// other ports upgrade with STARTTLS when the server offers it.
func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Pass),
		mail.WithTimeout(defaultTimeout),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// ComposeContactEmail builds the plain-text notification message.
func ComposeContactEmail(from, to string, p models.ContactPayload) (*mail.Msg, error) {
	name := singleLine(strings.TrimSpace(p.FirstName + " " + p.LastName))

	optIn := "No"
	if p.MarketingOptIn {
		optIn = "Yes"
	}
	elapsed := ""
	if p.TimeToSubmitMs != nil {
		elapsed = strconv.FormatFloat(*p.TimeToSubmitMs, 'f', -1, 64)
	}

	lines := []string{
		strings.TrimSpace("Name: " + name),
		"Email: " + p.Email,
		"Phone: " + p.Phone,
		"Job Title: " + p.JobTitle,
		"Company: " + p.Company,
		"Country: " + p.Country,
		"Message: " + p.Message,
		"Marketing opt-in: " + optIn,
		"Time to submit (ms): " + elapsed,
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(strings.TrimSpace("New contact from " + name))
	msg.SetBodyString(mail.TypeTextPlain, strings.Join(lines, "\n")+"\n")
	return msg, nil
}

// singleLine folds any line breaks in s into spaces.
func singleLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}
