package contact

import (
	"fmt"
	"strings"
	"time"

	"merchex/errs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AnonymousName stands in for the sender when no name was given.
const AnonymousName = "anonyme"

const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxMessageLength = 1000
)

var (
	ErrDeliveryFailed  = errs.Errorf(errs.EINTERNAL, "contact: message delivery failed")
	ErrArchiveDisabled = errs.Errorf(errs.ENOTIMPLEMENTED, "contact: message archive not configured")
)

// Message is a contact form submission.
type Message struct {
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email"`
	Body   string    `json:"message"`
	SentAt time.Time `json:"sent_at"`
}

func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)
	return m
}

func (m Message) Validate() error {
	return errs.FromValidation(validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.RuneLength(0, maxNameLength)),
		validation.Field(&m.Email, validation.Required, validation.RuneLength(0, maxEmailLength), is.EmailFormat),
		validation.Field(&m.Body, validation.Required, validation.RuneLength(0, maxMessageLength)),
	))
}

// SenderName is the submitted name or AnonymousName.
func (m Message) SenderName() string {
	if m.Name == "" {
		return AnonymousName
	}
	return m.Name
}

func (m Message) Subject() string {
	return fmt.Sprintf("Message from %s via MerchEx Contact Us form", m.SenderName())
}

// Email is what the notifier hands to the mail transport.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}
