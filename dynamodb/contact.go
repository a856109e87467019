package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"merchex/contact"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// ContactAPI is the part of the DynamoDB client the archive uses.
type ContactAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ContactRepository implements contact.Archive on a DynamoDB table keyed by id.
type ContactRepository struct {
	client ContactAPI
	table  string
}

type messageItem struct {
	ID      string `dynamodbav:"id"`
	Name    string `dynamodbav:"name,omitempty"`
	Email   string `dynamodbav:"email"`
	Message string `dynamodbav:"message"`
	SentAt  string `dynamodbav:"sent_at"`
}

func NewContactRepository(client ContactAPI, table string) *ContactRepository {
	return &ContactRepository{
		client: client,
		table:  strings.TrimSpace(table),
	}
}

func (r *ContactRepository) SaveMessage(ctx context.Context, m contact.Message) error {
	if r.table == "" {
		return ErrContactsTableRequired
	}

	item := messageItem{
		ID:      uuid.NewString(),
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Body,
		SentAt:  m.SentAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal contact message: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put contact message: %w", err)
	}

	return nil
}

// AllMessages scans the whole table and returns messages newest first.
func (r *ContactRepository) AllMessages(ctx context.Context) ([]contact.Message, error) {
	if r.table == "" {
		return nil, ErrContactsTableRequired
	}

	messages := []contact.Message{}
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan contact messages: %w", err)
		}

		var items []messageItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal contact messages: %w", err)
		}
		for _, item := range items {
			sentAt, err := time.Parse(time.RFC3339Nano, item.SentAt)
			if err != nil {
				return nil, fmt.Errorf("dynamodb: contact message %s: %w", item.ID, err)
			}
			messages = append(messages, contact.Message{
				Name:   item.Name,
				Email:  item.Email,
				Body:   item.Message,
				SentAt: sentAt,
			})
		}
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt.After(messages[j].SentAt)
	})
	return messages, nil
}
