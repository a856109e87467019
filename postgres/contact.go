package postgres

import (
	"context"
	"time"

	"merchex/contact"

	"gorm.io/gorm"
)

// ContactMessageModel represents an archived contact form submission
type ContactMessageModel struct {
	ID     int64     `gorm:"primaryKey"`
	Name   string    `gorm:"not null;default:''"`
	Email  string    `gorm:"not null"`
	Body   string    `gorm:"column:message;not null"`
	SentAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ContactRepository implements contact.Archive interface
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) SaveMessage(ctx context.Context, m contact.Message) error {
	model := ContactMessageModel{
		Name:   m.Name,
		Email:  m.Email,
		Body:   m.Body,
		SentAt: m.SentAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// AllMessages returns archived messages, most recent first.
func (r *ContactRepository) AllMessages(ctx context.Context) ([]contact.Message, error) {
	var models []ContactMessageModel
	if err := r.db.WithContext(ctx).Order("sent_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	messages := make([]contact.Message, len(models))
	for i, model := range models {
		messages[i] = contact.Message{
			Name:   model.Name,
			Email:  model.Email,
			Body:   model.Body,
			SentAt: model.SentAt.UTC(),
		}
	}
	return messages, nil
}
