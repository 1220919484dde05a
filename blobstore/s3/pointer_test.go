package s3

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/addrtrie/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock honoring the conditional
// put used by PointerStore.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue

	// onPut, when set, runs before a PutItem takes effect. Lets tests
	// interleave a competing write between a store's read and its
	// conditional put.
	onPut func()
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.onPut != nil {
		hook := m.onPut
		m.onPut = nil
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gazetteer := params.Item["gazetteer"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := gazetteer + ":" + version

	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gazetteer := params.ExpressionAttributeValues[":g"].(*types.AttributeValueMemberS).Value

	var best map[string]types.AttributeValue
	var bestVersion uint64
	for _, item := range m.items {
		if item["gazetteer"].(*types.AttributeValueMemberS).Value != gazetteer {
			continue
		}
		v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		if best == nil || v > bestVersion {
			best = item
			bestVersion = v
		}
	}

	out := &dynamodb.QueryOutput{}
	if best != nil {
		out.Items = []map[string]types.AttributeValue{best}
	}
	return out, nil
}

func TestPointerStoreCommitAndCurrent(t *testing.T) {
	ctx := context.Background()
	ps := NewPointerStore(newMockDDBClient(), "addrtrie-pointers")

	_, _, err := ps.Current(ctx, "national")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	v, err := ps.Commit(ctx, "national", "blobs/aaa.trie")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = ps.Commit(ctx, "national", "blobs/bbb.trie")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	version, key, err := ps.Current(ctx, "national")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, "blobs/bbb.trie", key)
}

func TestPointerStoreIsolatesGazetteers(t *testing.T) {
	ctx := context.Background()
	ps := NewPointerStore(newMockDDBClient(), "addrtrie-pointers")

	_, err := ps.Commit(ctx, "north", "blobs/north.trie")
	require.NoError(t, err)

	_, _, err = ps.Current(ctx, "south")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	version, key, err := ps.Current(ctx, "north")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, "blobs/north.trie", key)
}

func TestPointerStoreConcurrentCommit(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()

	a := NewPointerStore(ddb, "addrtrie-pointers")
	b := NewPointerStore(ddb, "addrtrie-pointers")

	// Both writers read version 0; only the first conditional put wins.
	_, err := a.Commit(ctx, "national", "blobs/a.trie")
	require.NoError(t, err)

	// Simulate the loser: same version already taken.
	ddb.mu.Lock()
	_, taken := ddb.items["national:1"]
	ddb.mu.Unlock()
	require.True(t, taken)

	v, err := b.Commit(ctx, "national", "blobs/b.trie")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}

func TestPointerStoreConditionalConflict(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	ps := NewPointerStore(ddb, "addrtrie-pointers")

	// A competing writer claims version 1 between this store's read and
	// its conditional put.
	ddb.onPut = func() {
		ddb.mu.Lock()
		defer ddb.mu.Unlock()
		ddb.items["national:1"] = map[string]types.AttributeValue{
			"gazetteer": &types.AttributeValueMemberS{Value: "national"},
			"version":   &types.AttributeValueMemberN{Value: "1"},
			"blob_key":  &types.AttributeValueMemberS{Value: "blobs/rival.trie"},
		}
	}

	_, err := ps.Commit(ctx, "national", "blobs/mine.trie")
	assert.ErrorIs(t, err, ErrConcurrentCommit)

	// Retrying after re-reading succeeds at the next version.
	v, err := ps.Commit(ctx, "national", "blobs/mine.trie")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}
