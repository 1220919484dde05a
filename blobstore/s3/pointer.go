package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/addrtrie/blobstore"
)

// PointerStore tracks which blob is currently live for each gazetteer,
// using DynamoDB conditional writes for atomic publication. Multiple
// builders can race to publish; exactly one wins each version.
//
// Table schema:
//   - Partition key: gazetteer (string)
//   - Sort key: version (number) - monotonically increasing
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name addrtrie-pointers \
//	  --attribute-definitions AttributeName=gazetteer,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=gazetteer,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type PointerStore struct {
	client    DDBClient
	tableName string
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentCommit is returned when another writer published the
// same version first. Retry by re-reading Current and committing again.
var ErrConcurrentCommit = errors.New("concurrent commit detected")

// NewPointerStore creates a pointer store on the given DynamoDB table.
func NewPointerStore(client DDBClient, tableName string) *PointerStore {
	return &PointerStore{
		client:    client,
		tableName: tableName,
	}
}

// Current returns the latest published version and blob key for the
// gazetteer. Returns blobstore.ErrNotFound when nothing has been
// published yet.
func (p *PointerStore) Current(ctx context.Context, gazetteer string) (version uint64, blobKey string, err error) {
	version, blobKey, err = p.latest(ctx, gazetteer)
	if err != nil {
		return 0, "", err
	}
	if version == 0 {
		return 0, "", blobstore.ErrNotFound
	}
	return version, blobKey, nil
}

// Commit publishes blobKey as the next version for the gazetteer.
// Returns the version that was written, or ErrConcurrentCommit if
// another writer claimed it first.
func (p *PointerStore) Commit(ctx context.Context, gazetteer, blobKey string) (uint64, error) {
	current, _, err := p.latest(ctx, gazetteer)
	if err != nil {
		return 0, err
	}
	next := current + 1

	// Conditional put: only succeed if this version doesn't exist yet
	_, err = p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(p.tableName),
		Item: map[string]types.AttributeValue{
			"gazetteer": &types.AttributeValueMemberS{Value: gazetteer},
			"version":   &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"blob_key":  &types.AttributeValueMemberS{Value: blobKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentCommit
		}
		return 0, fmt.Errorf("commit pointer version: %w", err)
	}

	return next, nil
}

// latest queries DynamoDB for the newest committed version.
// A gazetteer with no entries reports version 0.
func (p *PointerStore) latest(ctx context.Context, gazetteer string) (uint64, string, error) {
	resp, err := p.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(p.tableName),
		KeyConditionExpression: aws.String("gazetteer = :g"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":g": &types.AttributeValueMemberS{Value: gazetteer},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query pointer table: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute")
	}
	keyAttr, ok := item["blob_key"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid blob_key attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse pointer version: %w", err)
	}

	return version, keyAttr.Value, nil
}
