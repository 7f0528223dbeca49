package service

import (
	"bytes"
	"context"
	"net/http"
	"net/mail"
	"quizfy_backend/internal/config"
	"quizfy_backend/pkg/logger"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type MailMessage struct {
	To       []mail.Address
	Subject  string
	TextBody string
	HTMLBody string
}

func (m *MailMessage) HasRecipients() bool {
	return len(m.To) > 0
}

// MailProvider delivers a single rendered message.
type MailProvider interface {
	Name() string
	Send(ctx context.Context, from mail.Address, msg *MailMessage) error
}

// ConsoleMailProvider writes messages to the log and keeps a copy of each.
type ConsoleMailProvider struct {
	mu   sync.Mutex
	Sent []MailMessage
}

func (p *ConsoleMailProvider) Name() string { return "console" }

func (p *ConsoleMailProvider) Send(ctx context.Context, from mail.Address, msg *MailMessage) error {
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, addr.String())
	}
	logger.Log.Info("Email (console backend)",
		zap.String("from", from.String()),
		zap.Strings("to", to),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	p.mu.Lock()
	p.Sent = append(p.Sent, *msg)
	p.mu.Unlock()
	return nil
}

func (p *ConsoleMailProvider) Messages() []MailMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]MailMessage(nil), p.Sent...)
}

type SMTPMailProvider struct {
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

func (p *SMTPMailProvider) Name() string { return "smtp" }

var errHeaderLineBreak = errors.New("mail header contains a line break")

func (p *SMTPMailProvider) client() (*gomail.Client, error) {
	opts := []gomail.Option{gomail.WithTLSPolicy(gomail.NoTLS)}
	if p.UseTLS {
		opts[0] = gomail.WithTLSPolicy(gomail.TLSMandatory)
	}
	if p.Port > 0 {
		opts = append(opts, gomail.WithPort(p.Port))
	}
	if p.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(p.Timeout))
	}
	if p.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(p.User),
			gomail.WithPassword(p.Password),
		)
	}
	return gomail.NewClient(p.Host, opts...)
}

func (p *SMTPMailProvider) Send(ctx context.Context, from mail.Address, msg *MailMessage) error {
	m, err := newSMTPMessage(from, msg)
	if err != nil {
		return err
	}
	c, err := p.client()
	if err != nil {
		return errors.Wrap(err, "creating smtp client")
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrapf(err, "sending via %s", p.Host)
	}
	return nil
}

// newSMTPMessage builds the MIME message; header encoding is left to go-mail.
func newSMTPMessage(from mail.Address, msg *MailMessage) (*gomail.Msg, error) {
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return nil, errHeaderLineBreak
	}
	m := gomail.NewMsg()
	if err := m.FromFormat(from.Name, from.Address); err != nil {
		return nil, errors.Wrap(err, "invalid sender")
	}
	for _, to := range msg.To {
		if err := m.AddToFormat(to.Name, to.Address); err != nil {
			return nil, errors.Wrapf(err, "invalid recipient %q", to.Address)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}
	return m, nil
}

type SendGridMailProvider struct {
	APIKey string
}

func (p *SendGridMailProvider) Name() string { return "sendgrid" }

func (p *SendGridMailProvider) Send(ctx context.Context, from mail.Address, msg *MailMessage) error {
	personalization := sgmail.NewPersonalization()
	for _, to := range msg.To {
		personalization.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}
	personalization.Subject = msg.Subject

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(from.Name, from.Address))
	m.AddPersonalizations(personalization)
	m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	if msg.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	req := sendgrid.GetRequest(p.APIKey, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid rejected message: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// MailService sends through the configured provider and falls back to the
// console backend when delivery fails.
type MailService struct {
	mu            sync.RWMutex
	provider      MailProvider
	fallback      *ConsoleMailProvider
	from          mail.Address
	subjectPrefix string
}

func NewMailService(cfg config.MailConfig) *MailService {
	s := &MailService{fallback: &ConsoleMailProvider{}}
	s.Configure(cfg)
	return s
}

// Configure picks a backend; it is called again on config reload.
func (s *MailService) Configure(cfg config.MailConfig) {
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		from = &mail.Address{Name: "Quizfy", Address: cfg.From}
	}

	var provider MailProvider
	switch {
	case cfg.Backend == "console":
		provider = s.fallback
	case cfg.Backend == "sendgrid" || (cfg.Backend == "" && cfg.SendGridAPIKey != ""):
		provider = &SendGridMailProvider{APIKey: cfg.SendGridAPIKey}
	case cfg.Backend == "smtp" || (cfg.Backend == "" && cfg.Password != ""):
		provider = &SMTPMailProvider{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			UseTLS:   cfg.UseTLS,
			Timeout:  cfg.Timeout,
		}
	default:
		provider = s.fallback
	}

	s.mu.Lock()
	s.provider = provider
	s.from = *from
	s.subjectPrefix = cfg.SubjectPrefix
	s.mu.Unlock()

	logger.Log.Info("Mail backend configured", zap.String("backend", provider.Name()))
}

func (s *MailService) Console() *ConsoleMailProvider {
	return s.fallback
}

// Send never returns delivery errors to the caller.
func (s *MailService) Send(ctx context.Context, msg *MailMessage) {
	if !msg.HasRecipients() {
		return
	}
	s.mu.RLock()
	provider, from, prefix := s.provider, s.from, s.subjectPrefix
	s.mu.RUnlock()

	out := *msg
	out.Subject = foldLineBreaks(prefix + msg.Subject)

	if err := provider.Send(ctx, from, &out); err != nil {
		logger.ReportError("Email delivery failed, using console backend", err,
			zap.String("backend", provider.Name()),
			zap.String("subject", out.Subject),
		)
		_ = s.fallback.Send(ctx, from, &out)
	}
}

func foldLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

var (
	passwordResetTmpl = template.Must(template.New("password_reset").Parse(
		`Hello {{.Username}},

You're receiving this email because a password reset was requested for your Quizfy account.

Please open the following link to choose a new password:
{{.Link}}

If you didn't request this, you can ignore this email.

The Quizfy team
`))
	passwordChangedTmpl = template.Must(template.New("password_changed").Parse(
		`Hello {{.Username}},

The password of your Quizfy account was changed on {{.When}}.
If this wasn't you, reset your password immediately: {{.ResetURL}}

The Quizfy team
`))
)

func renderTemplate(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "rendering %s", t.Name())
	}
	return buf.String(), nil
}
