package contact

import (
	"context"
	"time"

	"merchex/errs"
	"merchex/pkg/logger"

	"go.uber.org/zap"
)

// DefaultRecipient receives contact messages unless configured otherwise.
const DefaultRecipient = "admin@merchex.xyz"

type Service interface {
	Submit(ctx context.Context, m Message) error
	ListMessages(ctx context.Context) ([]Message, error)
}

// Mailer delivers a composed email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Archive keeps a copy of delivered messages.
type Archive interface {
	SaveMessage(ctx context.Context, m Message) error
	AllMessages(ctx context.Context) ([]Message, error)
}

type Option func(uc *Usecase)

// WithArchive stores every delivered message in a.
func WithArchive(a Archive) Option {
	return func(uc *Usecase) {
		uc.archive = a
	}
}

// WithRecipient overrides DefaultRecipient.
func WithRecipient(recipient string) Option {
	return func(uc *Usecase) {
		if recipient != "" {
			uc.recipient = recipient
		}
	}
}

// WithLogger reports archive failures to l.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(uc *Usecase) {
		if l != nil {
			uc.logger = l
		}
	}
}

type Usecase struct {
	mailer    Mailer
	archive   Archive
	logger    *zap.SugaredLogger
	recipient string
	now       func() time.Time
}

func NewUsecase(mailer Mailer, opts ...Option) *Usecase {
	uc := &Usecase{
		mailer:    mailer,
		logger:    logger.NOOPLogger,
		recipient: DefaultRecipient,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Submit validates m and sends exactly one email to the recipient. A nil
// error means the message was sent. Transport failures are returned as
// ErrDeliveryFailed; nothing is retried. Archive failures happen after
// delivery, so they are logged and not returned.
func (uc *Usecase) Submit(ctx context.Context, m Message) error {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}

	err := uc.mailer.Send(ctx, Email{
		To:      []string{uc.recipient},
		ReplyTo: m.Email,
		Subject: m.Subject(),
		Body:    m.Body,
	})
	if err != nil {
		return errs.Wrap(ErrDeliveryFailed.Code, err, ErrDeliveryFailed.Message)
	}

	if uc.archive == nil {
		return nil
	}
	m.SentAt = uc.now()
	if err := uc.archive.SaveMessage(ctx, m); err != nil {
		uc.logger.Errorw("archive contact message", "email", m.Email, zap.Error(err))
	}
	return nil
}

func (uc *Usecase) ListMessages(ctx context.Context) ([]Message, error) {
	if uc.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return uc.archive.AllMessages(ctx)
}
