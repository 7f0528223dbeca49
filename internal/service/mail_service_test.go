package service

import (
	"bytes"
	"context"
	"net/mail"
	"quizfy_backend/internal/config"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var encodedSubject = regexp.MustCompile(`(?m)^Subject: =\?UTF-8\?[qQbB]\?`)

func TestSMTPMessageEncodesHeaders(t *testing.T) {
	from := mail.Address{Name: "Quizfy", Address: "noreply@quizfy.test"}
	msg := &MailMessage{
		To:       []mail.Address{{Name: "سارة علي", Address: "sara@school.test"}},
		Subject:  "[Quizfy] إعادة تعيين كلمة المرور",
		TextBody: "Hello Sara,\nopen the link.",
		HTMLBody: "<p>Hello Sara</p>",
	}

	m, err := newSMTPMessage(from, msg)
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = m.WriteTo(&out)
	require.NoError(t, err)

	raw := out.String()
	assert.Regexp(t, encodedSubject, raw)
	assert.NotContains(t, raw, "Subject: [Quizfy] إعادة")
	assert.Contains(t, raw, "sara@school.test")
	assert.Contains(t, raw, "multipart/alternative")
}

func TestSMTPMessageRejectsHeaderInjection(t *testing.T) {
	from := mail.Address{Name: "Quizfy", Address: "noreply@quizfy.test"}
	to := []mail.Address{{Address: "sara@school.test"}}

	_, err := newSMTPMessage(from, &MailMessage{To: to, Subject: "Reset\r\nBcc: all@school.test"})
	assert.ErrorIs(t, err, errHeaderLineBreak)

	_, err = newSMTPMessage(from, &MailMessage{To: []mail.Address{{Address: "sara@school.test\r\nBcc: x@evil.test"}}, Subject: "Reset"})
	assert.Error(t, err)
}

func TestMailServiceFallsBackToConsole(t *testing.T) {
	svc := NewMailService(config.MailConfig{
		Backend:       "smtp",
		Host:          "127.0.0.1",
		Port:          1,
		Timeout:       time.Second,
		From:          "Quizfy <noreply@quizfy.test>",
		SubjectPrefix: "[Quizfy] ",
	})

	svc.Send(context.Background(), &MailMessage{
		To:       []mail.Address{{Address: "sara@school.test"}},
		Subject:  "Password\nchanged",
		TextBody: "body",
	})
	svc.Send(context.Background(), &MailMessage{Subject: "nobody"})

	sent := svc.Console().Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "[Quizfy] Password changed", sent[0].Subject)
}
