package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fabiomatricardi/cm-log-system/entity"

	"github.com/wneessen/go-mail"
)

var (
	ErrMailNotConfigured = errors.New("email not configured: missing app password")
	ErrMailAuth          = errors.New("email authentication failed")
)

// Mail is one corrective maintenance notice.
type Mail struct {
	ReportID    string
	Recipients  []string
	Note        string
	Attachments []StoredAttachment
}

// Mailer delivers notices. Send returns the original names of the files that
// were actually attached.
type Mailer interface {
	Send(ctx context.Context, m Mail) ([]string, error)
}

type MailerConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
	Timeout  time.Duration
	// SystemIP is printed in the message footer.
	SystemIP string
}

// SMTPMailer sends over implicit TLS with PLAIN auth, once, without retry.
type SMTPMailer struct {
	cfg MailerConfig
	now func() time.Time
}

func NewSMTPMailer(cfg MailerConfig) *SMTPMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPMailer{cfg: cfg, now: time.Now}
}

func (m *SMTPMailer) Configured() bool {
	return m.cfg.Password != "" && m.cfg.Sender != ""
}

func BuildSubject(reportID, timestamp string) string {
	if reportID == "" {
		return fmt.Sprintf("🔧 Corrective Maintenance Notice - %s", timestamp)
	}
	return fmt.Sprintf("🔧 Corrective Maintenance Notice #%s - %s", reportID, timestamp)
}

func BuildBody(note, timestamp, systemIP string, attachments int) string {
	return fmt.Sprintf(`CORRECTIVE MAINTENANCE ACTION REQUIRED
========================================
%s
⚠️ CONFIDENTIAL: Contains operational safety data.
Do not forward outside authorized personnel.

System Details:
• Generated by: CM LOG SYSTEM
• Timestamp: %s
• System IP: %s
• Attachments: %d file(s)

Automated message from CM LOG SYSTEM
`, note, timestamp, systemIP, attachments)
}

// DisplayRecipients shows at most three addresses and counts the rest.
func DisplayRecipients(rcpts []string) string {
	if len(rcpts) <= 3 {
		return strings.Join(rcpts, ", ")
	}
	return fmt.Sprintf("%s +%d others", strings.Join(rcpts[:3], ", "), len(rcpts)-3)
}

// BuildNote renders the report summary placed in the message body.
func BuildNote(e entity.LogEntry) string {
	desc := e.Description
	if desc == "" {
		desc = "None provided"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", e.FormattedID())
	fmt.Fprintf(&b, "TAGNAME: %s\n", e.TagName)
	fmt.Fprintf(&b, "DESCRIPTION: %s\n", desc)
	fmt.Fprintf(&b, "Reported by: %s\n", e.ReportedBy)
	fmt.Fprintf(&b, "Timestamp: %s\n", e.Timestamp)
	fmt.Fprintf(&b, "Status: %s\n", e.Status)
	fmt.Fprintf(&b, "Attachments: %d file(s)", e.AttachmentCount)
	if len(e.OriginalFilenames) > 0 {
		b.WriteString("\n\nAttached Files:")
		for _, name := range e.OriginalFilenames {
			fmt.Fprintf(&b, "\n• %s", name)
		}
	}
	return b.String()
}

func (m *SMTPMailer) Send(ctx context.Context, in Mail) ([]string, error) {
	if !m.Configured() {
		return nil, ErrMailNotConfigured
	}
	timestamp := entity.Stamp(m.now())

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	// Everyone is blind-copied; the visible To line is a summary.
	if err := msg.Bcc(in.Recipients...); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.SetGenHeader(mail.Header("To"), DisplayRecipients(in.Recipients))
	msg.Subject(BuildSubject(in.ReportID, timestamp))
	msg.SetBodyString(mail.TypeTextPlain, BuildBody(in.Note, timestamp, m.cfg.SystemIP, len(in.Attachments)))

	var attached []string
	for _, a := range in.Attachments {
		if _, err := os.Stat(a.Path); err != nil {
			log.Printf("⚠️ Skipping missing file: %s", a.Path)
			continue
		}
		msg.AttachFile(a.Path, mail.WithFileName(a.OriginalName))
		attached = append(attached, a.OriginalName)
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Sender),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "authenticat") {
			return nil, fmt.Errorf("%w: %v", ErrMailAuth, err)
		}
		return nil, err
	}
	return attached, nil
}
