package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func renderMsg(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func headerLines(raw string) []string {
	head, _, _ := strings.Cut(strings.ReplaceAll(raw, "\r\n", "\n"), "\n\n")
	return strings.Split(head, "\n")
}

func TestMailer_NotConfigured(t *testing.T) {
	m := NewMailer(SMTPSettings{Host: "smtp.example.com", Port: 587})
	assert.False(t, m.Configured())
	assert.ErrorIs(t, m.Notify(context.Background(), validPayload()), ErrMailNotConfigured)
}

func TestMailer_Notify(t *testing.T) {
	m := NewMailer(SMTPSettings{
		Host: "smtp.example.com",
		Port: 587,
		User: "bot@example.com",
		Pass: "pw",
		To:   "sales@example.com",
	})
	require.True(t, m.Configured())

	var sent *mail.Msg
	m.send = func(_ context.Context, msg *mail.Msg) error {
		sent = msg
		return nil
	}

	require.NoError(t, m.Notify(context.Background(), validPayload()))
	require.NotNil(t, sent)

	raw := renderMsg(t, sent)
	assert.Contains(t, headerLines(raw), "Subject: New contact from Ada  Lovelace")
	assert.Contains(t, raw, "bot@example.com")
	assert.Contains(t, raw, "sales@example.com")
	assert.Contains(t, raw, "Company: Analytical Engines")
}

func TestMailer_SendError(t *testing.T) {
	m := NewMailer(SMTPSettings{Host: "h", Port: 465, User: "u@example.com", Pass: "p", To: "t@example.com"})
	m.send = func(context.Context, *mail.Msg) error {
		return errors.New("connection refused")
	}
	err := m.Notify(context.Background(), validPayload())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMailNotConfigured)
}

func TestComposeContactEmail(t *testing.T) {
	p := validPayload()
	p.FirstName = "Ada"
	p.MarketingOptIn = true

	msg, err := ComposeContactEmail("from@example.com", "to@example.com", p)
	require.NoError(t, err)
	raw := renderMsg(t, msg)

	assert.Contains(t, headerLines(raw), "Subject: New contact from Ada Lovelace")
	assert.Contains(t, raw, "Name: Ada Lovelace")
	assert.Contains(t, raw, "Marketing opt-in: Yes")
	assert.Contains(t, raw, "Time to submit (ms): 4200")
}

func TestComposeContactEmail_NoHeaderInjection(t *testing.T) {
	p := validPayload()
	p.FirstName = "Eve\r\nBcc: victim@example.com"
	p.LastName = "X"

	msg, err := ComposeContactEmail("from@example.com", "to@example.com", p)
	require.NoError(t, err)

	for _, line := range headerLines(renderMsg(t, msg)) {
		assert.False(t, strings.HasPrefix(strings.ToLower(line), "bcc:"), "unexpected header %q", line)
	}
}

func TestComposeContactEmail_InvalidAddress(t *testing.T) {
	_, err := ComposeContactEmail("not an address", "to@example.com", validPayload())
	assert.Error(t, err)
}
