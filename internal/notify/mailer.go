package notify

import (
	"context"
	"log/slog"

	"github.com/wneessen/go-mail"

	"fleetgate/internal/platform/config"
)

// Message is a rendered mail ready for transport.
type Message struct {
	Subject    string
	Body       Body
	Recipients []string
	BCC        []string
	ReplyTo    string
}

// Mailer is the delivery channel. Send reports success as a boolean and
// never returns an error: transport failures are absorbed (logged by the
// implementation), matching the portal's fail-silently policy.
type Mailer interface {
	Send(ctx context.Context, msg Message) bool
}

// SMTPMailer delivers through an SMTP relay via go-mail. Every message is
// blind-copied to the configured admin list and carries the support reply-to
// unless the job overrides it.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) bool {
	mailMsg := mail.NewMsg()
	if err := mailMsg.From(m.cfg.From); err != nil {
		return m.failed(ctx, msg, err)
	}
	if err := mailMsg.To(msg.Recipients...); err != nil {
		return m.failed(ctx, msg, err)
	}
	bcc := append(append([]string(nil), m.cfg.AdminBCC...), msg.BCC...)
	if len(bcc) > 0 {
		if err := mailMsg.Bcc(bcc...); err != nil {
			return m.failed(ctx, msg, err)
		}
	}
	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = m.cfg.ReplyTo
	}
	if replyTo != "" {
		if err := mailMsg.ReplyTo(replyTo); err != nil {
			return m.failed(ctx, msg, err)
		}
	}

	mailMsg.Subject(msg.Subject)
	mailMsg.SetBodyString(mail.TypeTextPlain, msg.Body.Text)
	if msg.Body.HTML != "" {
		mailMsg.AddAlternativeString(mail.TypeTextHTML, msg.Body.HTML)
	}

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return m.failed(ctx, msg, err)
	}
	defer client.Close()

	if err := client.DialAndSendWithContext(ctx, mailMsg); err != nil {
		return m.failed(ctx, msg, err)
	}
	return true
}

// failed swallows the delivery error: the outcome is the boolean, the error
// is only visible in logs.
func (m *SMTPMailer) failed(ctx context.Context, msg Message, err error) bool {
	m.logger.WarnContext(ctx, "mail delivery failed",
		"subject", msg.Subject,
		"recipients", len(msg.Recipients),
		"error", err.Error(),
	)
	return false
}
