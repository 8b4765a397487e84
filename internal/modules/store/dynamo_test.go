package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDynamoAPI is a mock implementation of DynamoAPI.
type MockDynamoAPI struct {
	mock.Mock
}

func (m *MockDynamoAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.UpdateItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DeleteItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func str(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func TestPutIfAbsent(t *testing.T) {
	item := Item{"PK": str("USER#u1"), "SK": str("PROJECT#t#p1")}

	tests := []struct {
		name    string
		putErr  error
		wantErr error
	}{
		{"success", nil, nil},
		{"key taken", &types.ConditionalCheckFailedException{}, ErrAlreadyExists},
		{"infrastructure failure", errors.New("throttled"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockDynamoAPI{}
			client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
				return *in.TableName == "tbl" && *in.ConditionExpression == "attribute_not_exists(PK) AND attribute_not_exists(SK)"
			})).Return(&dynamodb.PutItemOutput{}, tt.putErr)

			err := NewDynamo(client, "tbl").PutIfAbsent(context.Background(), item)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.putErr != nil:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrAlreadyExists)
			default:
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestUpdateIfExists_MapsConditionalFailureToNotFound(t *testing.T) {
	client := &MockDynamoAPI{}
	client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return *in.ConditionExpression == "attribute_exists(PK) AND attribute_exists(SK)"
	})).Return(nil, &types.ConditionalCheckFailedException{})

	err := NewDynamo(client, "tbl").UpdateIfExists(context.Background(), "USER#u1", "PROJECT#t#p1",
		map[string]types.AttributeValue{"name": str("renamed")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIfExists_MapsConditionalFailureToNotFound(t *testing.T) {
	client := &MockDynamoAPI{}
	client.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

	err := NewDynamo(client, "tbl").DeleteIfExists(context.Background(), "USER#u1", "PROJECT#t#p1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_AbsentItemIsNotFound(t *testing.T) {
	client := &MockDynamoAPI{}
	client.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewDynamo(client, "tbl").Get(context.Background(), "USER#u1", "FILE#p1#f1", false)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryByPrefix_PassesFilterAndContinuation(t *testing.T) {
	startKey := Item{"PK": str("USER#u1"), "SK": str("PROJECT#t#p3")}
	lastKey := Item{"PK": str("USER#u1"), "SK": str("PROJECT#t#p7")}

	client := &MockDynamoAPI{}
	client.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.FilterExpression == "#fa = :fv" &&
			in.ExpressionAttributeNames["#fa"] == "projectId" &&
			in.ExclusiveStartKey != nil &&
			*in.ConsistentRead &&
			!*in.ScanIndexForward
	})).Return(&dynamodb.QueryOutput{
		Items:            []Item{{"projectId": str("p5")}},
		LastEvaluatedKey: lastKey,
	}, nil)

	page, err := NewDynamo(client, "tbl").QueryByPrefix(context.Background(), Query{
		PartitionKey:   "USER#u1",
		SortKeyPrefix:  "PROJECT#",
		ConsistentRead: true,
		Descending:     true,
		StartKey:       startKey,
		FilterAttr:     "projectId",
		FilterValue:    "p5",
	})

	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, lastKey, page.LastKey)
}

func TestCountByPrefix_SumsPages(t *testing.T) {
	lastKey := Item{"SK": str("FILE#p1#f9")}

	client := &MockDynamoAPI{}
	client.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{Count: 50, LastEvaluatedKey: lastKey}, nil).Once()
	client.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{Count: 7}, nil).Once()

	total, err := NewDynamo(client, "tbl").CountByPrefix(context.Background(), "USER#u1", "FILE#")

	assert.NoError(t, err)
	assert.Equal(t, int64(57), total)
	client.AssertExpectations(t)
}
