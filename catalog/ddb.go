package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the subset of the DynamoDB API the catalog depends on.
// *dynamodb.Client satisfies it; tests substitute a fake.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DDB is a Catalog backed by a DynamoDB table, for safe coordination of
// concurrent writers. Each commit is a conditional put of the next
// version, so exactly one writer wins a version.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: version (number), monotonically increasing
//
// Create with:
//
//	aws dynamodb create-table \
//	  --table-name molfeat-catalog \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDB struct {
	client    DDBClient
	tableName string
}

// NewDDB creates a DynamoDB-backed catalog.
func NewDDB(client DDBClient, tableName string) *DDB {
	return &DDB{
		client:    client,
		tableName: tableName,
	}
}

// Latest implements Catalog.
func (c *DDB) Latest(ctx context.Context, dataset string) (*Entry, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("dataset = :ds"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ds": &types.AttributeValueMemberS{Value: dataset},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query catalog table: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrDatasetNotFound
	}

	return entryFromItem(dataset, resp.Items[0])
}

// Commit implements Catalog.
func (c *DDB) Commit(ctx context.Context, entry *Entry) error {
	var version uint64
	prev, err := c.Latest(ctx, entry.Dataset)
	switch {
	case err == nil:
		version = prev.Version + 1
	case errors.Is(err, ErrDatasetNotFound):
		version = 1
	default:
		return err
	}

	entry.Version = version
	entry.UpdatedAt = time.Now().UTC()

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"dataset":    &types.AttributeValueMemberS{Value: entry.Dataset},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"object":     &types.AttributeValueMemberS{Value: entry.Object},
			"variant":    &types.AttributeValueMemberS{Value: entry.Variant},
			"rows":       &types.AttributeValueMemberN{Value: strconv.Itoa(entry.Rows)},
			"cols":       &types.AttributeValueMemberN{Value: strconv.Itoa(entry.Columns)},
			"updated_at": &types.AttributeValueMemberS{Value: entry.UpdatedAt.Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentCommit
		}
		return fmt.Errorf("commit catalog entry: %w", err)
	}

	return nil
}

func entryFromItem(dataset string, item map[string]types.AttributeValue) (*Entry, error) {
	e := &Entry{Dataset: dataset}

	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, errors.New("catalog item missing version attribute")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse catalog version: %w", err)
	}
	e.Version = version

	if attr, ok := item["object"].(*types.AttributeValueMemberS); ok {
		e.Object = attr.Value
	}
	if attr, ok := item["variant"].(*types.AttributeValueMemberS); ok {
		e.Variant = attr.Value
	}
	if attr, ok := item["rows"].(*types.AttributeValueMemberN); ok {
		e.Rows, _ = strconv.Atoi(attr.Value)
	}
	if attr, ok := item["cols"].(*types.AttributeValueMemberN); ok {
		e.Columns, _ = strconv.Atoi(attr.Value)
	}
	if attr, ok := item["updated_at"].(*types.AttributeValueMemberS); ok {
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, attr.Value)
	}

	return e, nil
}
