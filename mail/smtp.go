package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchex/contact"

	gomail "github.com/wneessen/go-mail"
)

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	// Insecure sends without STARTTLS, for local relays such as mailpit.
	Insecure bool
}

// SMTPMailer implements contact.Mailer over SMTP.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(opts Options) (*SMTPMailer, error) {
	if opts.Host == "" {
		return nil, errors.New("mail: host is required")
	}
	if opts.From == "" {
		return nil, errors.New("mail: from address is required")
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if opts.Insecure {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, gomail.WithTimeout(opts.Timeout))
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mail: new client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   opts.From,
	}, nil
}

// Send delivers e in a single SMTP session. Nothing is retried.
func (m *SMTPMailer) Send(ctx context.Context, e contact.Email) error {
	msg, err := m.compose(e)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(e contact.Email) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("mail: from: %w", err)
	}
	if err := msg.To(e.To...); err != nil {
		return nil, fmt.Errorf("mail: to: %w", err)
	}
	if e.ReplyTo != "" {
		if err := msg.ReplyTo(e.ReplyTo); err != nil {
			return nil, fmt.Errorf("mail: reply-to: %w", err)
		}
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, e.Body)
	return msg, nil
}
