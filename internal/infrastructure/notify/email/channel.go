// Package email delivers routing notifications to the destination
// department's mailbox over SMTP.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/vmalikov/docflow/internal/core/domain"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type Channel struct {
	cfg    Config
	client *mail.Client
}

// New builds the channel. Callers treat missing SMTP configuration as
// "channel not configured" and skip construction entirely.
func New(cfg Config) (*Channel, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
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
		return nil, fmt.Errorf("build smtp client: %w", err)
	}
	return &Channel{cfg: cfg, client: client}, nil
}

func (c *Channel) Name() string { return "email" }

func (c *Channel) Notify(ctx context.Context, decision domain.RoutingDecision, doc *domain.Document, summary string) error {
	if decision.DepartmentEmail == "" {
		return fmt.Errorf("department %s has no email address", decision.DepartmentID)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(decision.DepartmentEmail); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("[%s] New document: %s", strings.ToUpper(string(decision.Priority)), doc.OriginalFilename))
	msg.SetBodyString(mail.TypeTextPlain, buildBody(decision, doc, summary))

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification mail: %w", err)
	}
	return nil
}

func buildBody(decision domain.RoutingDecision, doc *domain.Document, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New document received\n\n")
	fmt.Fprintf(&b, "Filename:   %s\n", doc.OriginalFilename)
	fmt.Fprintf(&b, "Category:   %s\n", doc.Category)
	fmt.Fprintf(&b, "Confidence: %.2f\n", decision.Confidence)
	fmt.Fprintf(&b, "Priority:   %s\n", decision.Priority)
	fmt.Fprintf(&b, "Assigned:   %s\n", decision.DepartmentName)
	fmt.Fprintf(&b, "Reason:     %s\n", decision.Reason)
	if decision.IsSensitive {
		b.WriteString("\nSENSITIVE CONTENT DETECTED\n")
	}
	if decision.NeedsReview {
		b.WriteString("\nREQUIRES MANUAL REVIEW\n")
	}
	if summary != "" {
		fmt.Fprintf(&b, "\nSummary:\n%s\n", truncate(summary, 500))
	}
	fmt.Fprintf(&b, "\nDecision timestamp: %s\n", decision.DecidedAt.Format(time.RFC3339))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
