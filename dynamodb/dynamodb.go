package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrContactsTableRequired = errors.New("dynamodb: contacts table is required")

// Options locates the contact archive table. Static keys are optional; the
// default AWS credential chain is used without them.
type Options struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SessionToken  string
	ContactsTable string
}

func (o Options) normalize() Options {
	o.Region = strings.TrimSpace(o.Region)
	o.Endpoint = strings.TrimSpace(o.Endpoint)
	o.ContactsTable = strings.TrimSpace(o.ContactsTable)
	return o
}

// Validate checks the options before any AWS call is made.
func (o Options) Validate() error {
	o = o.normalize()
	static := o.AccessKey != "" || o.SecretKey != "" || o.SessionToken != ""
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Region, validation.Required),
		validation.Field(&o.ContactsTable, validation.Required),
		validation.Field(&o.AccessKey, validation.Required.When(static)),
		validation.Field(&o.SecretKey, validation.Required.When(static)),
	)
	if err != nil {
		return fmt.Errorf("dynamodb: %w", err)
	}
	return nil
}

// NewContactArchive connects to DynamoDB and returns the contact archive
// stored in opts.ContactsTable.
func NewContactArchive(ctx context.Context, opts Options) (*ContactRepository, error) {
	opts = opts.normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewContactRepository(client, opts.ContactsTable), nil
}

func newClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}
