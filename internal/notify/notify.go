// Package notify tells the site staff about new contact messages.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"vidar/internal/model"
)

// Notifier delivers a notification for a stored contact message.
type Notifier interface {
	ContactReceived(ctx context.Context, msg *model.ContactMessage) error
}

// Noop discards notifications. It is used when no mail provider is configured.
type Noop struct{}

// ContactReceived does nothing.
func (Noop) ContactReceived(context.Context, *model.ContactMessage) error { return nil }

// ResendNotifier e-mails contact messages through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
	to     []string
	log    zerolog.Logger
}

// NewResend creates a notifier sending from `from` to every address in `to`.
func NewResend(apiKey, from string, to []string, log zerolog.Logger) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		log:    log,
	}
}

// ContactReceived sends one e-mail per message. The sender of the message is set as reply-to.
func (n *ResendNotifier) ContactReceived(ctx context.Context, msg *model.ContactMessage) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Nuevo mensaje de contacto de %s", msg.Nombre),
		Html:    contactHTML(msg),
		ReplyTo: msg.Email,
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	n.log.Info().Str("message_id", sent.Id).Str("contact_id", msg.ID.Hex()).Msg("contact notification sent")
	return nil
}

func contactHTML(msg *model.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Nombre:</strong> %s</p>", html.EscapeString(msg.Nombre))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Fecha:</strong> %s</p>", msg.FechaEnvio.UTC().Format("02/01/2006 15:04"))
	if msg.Mensaje != nil {
		body := strings.ReplaceAll(html.EscapeString(*msg.Mensaje), "\n", "<br>")
		fmt.Fprintf(&b, "<p>%s</p>", body)
	}
	return b.String()
}
