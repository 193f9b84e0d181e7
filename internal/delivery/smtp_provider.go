package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	apperrors "github.com/allisson/outreach/internal/errors"
)

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPProvider sends plain-text email through an SMTP relay.
type SMTPProvider struct {
	from   string
	sender mailSender
}

// NewSMTPProvider creates an SMTPProvider dialing cfg on every send.
func NewSMTPProvider(cfg SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send builds the message and waits for the relay or ctx, whichever ends first.
// The returned id is the Message-ID header assigned here.
func (s *SMTPProvider) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "recipient is required")
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), senderDomain(s.from))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	if msg.InReplyTo != "" {
		m.SetHeader("In-Reply-To", msg.InReplyTo)
		m.SetHeader("References", msg.InReplyTo)
	}
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() {
		done <- s.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", providerFailure(err)
		}
		return messageID, nil
	case <-ctx.Done():
		return "", providerFailure(ctx.Err())
	}
}

func senderDomain(from string) string {
	from = strings.TrimSuffix(strings.TrimSpace(from), ">")
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		return from[at+1:]
	}
	return "localhost"
}

func providerFailure(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrProviderFailure, err)
}
