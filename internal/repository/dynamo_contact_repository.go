package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/contactform/backend/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client used by
// DynamoContactRepository. *dynamodb.Client satisfies it.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	dynamodb.ScanAPIClient
}

// DynamoContactRepository stores contacts in a single DynamoDB table keyed by id.
type DynamoContactRepository struct {
	client DynamoAPI
	table  string
}

var _ ContactRepository = (*DynamoContactRepository)(nil)

// NewDynamoContactRepository loads the default AWS configuration (env vars,
// shared config, Lambda execution role) and returns a repository for table.
func NewDynamoContactRepository(ctx context.Context, table string) (*DynamoContactRepository, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewDynamoContactRepositoryWithClient(dynamodb.NewFromConfig(cfg), table), nil
}

// NewDynamoContactRepositoryWithClient wraps an existing client.
func NewDynamoContactRepositoryWithClient(client DynamoAPI, table string) *DynamoContactRepository {
	return &DynamoContactRepository{client: client, table: table}
}

// Put writes c as one item.
func (r *DynamoContactRepository) Put(ctx context.Context, c *model.Contact) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	return nil
}

// ScanAll reads the whole table, following LastEvaluatedKey across pages.
func (r *DynamoContactRepository) ScanAll(ctx context.Context) ([]*model.Contact, error) {
	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})

	var contacts []*model.Contact
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan contacts: %w", err)
		}
		var batch []*model.Contact
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal contacts: %w", err)
		}
		contacts = append(contacts, batch...)
	}
	return contacts, nil
}
