// Package notify emails run results to the requester over SMTP. Emails
// carry the artifact download links rather than the artifacts themselves.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"
)

// System sends result notifications.
type System interface {
	SendResults(ctx context.Context, to string, results Results) error
}

// Results holds what a notification email reports about a finished run.
type Results struct {
	Topic            string
	ReportURL        *string
	PodcastURL       *string
	PodcastRequested bool
}

type mailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

func New(cfg *Config, logger *slog.Logger) (System, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail client: %w", err)
	}

	return &mailer{
		client: client,
		from:   cfg.From,
		logger: logger.With("system", "notify"),
	}, nil
}

func (m *mailer) SendResults(ctx context.Context, to string, results Results) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address %s: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, to)
	}

	msg.Subject(Subject(results.Topic))
	msg.SetBodyString(mail.TypeTextPlain, Body(results))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send results email: %w", err)
	}

	m.logger.InfoContext(ctx, "results email sent", "to", to, "topic", results.Topic)
	return nil
}

// Subject returns the notification subject line for a topic.
func Subject(topic string) string {
	return fmt.Sprintf("Your Research Results for: %s", topic)
}

// Body renders the plain-text notification. Missing artifacts show a
// placeholder instead of a link: "Not generated" when the run could not
// produce one, "Not requested" when the podcast was never asked for.
func Body(r Results) string {
	report := "Not generated"
	if r.ReportURL != nil {
		report = *r.ReportURL
	}

	podcast := "Not requested"
	if r.PodcastRequested {
		podcast = "Not generated"
		if r.PodcastURL != nil {
			podcast = *r.PodcastURL
		}
	}

	var sb strings.Builder
	sb.WriteString("Hello,\n\nYour research run has finished.\n\n")
	fmt.Fprintf(&sb, "Topic: %s\n", r.Topic)
	fmt.Fprintf(&sb, "Report: %s\n", report)
	fmt.Fprintf(&sb, "Podcast: %s\n", podcast)
	sb.WriteString("\nDownload links are time-limited. Save anything you want to keep.\n")
	return sb.String()
}
