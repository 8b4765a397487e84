package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of the DynamoDB client the adapter uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type dynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamo returns a Store backed by one DynamoDB table.
func NewDynamo(client DynamoAPI, table string) Store {
	return &dynamoStore{client: client, table: table}
}

func key(pk, sk string) Item {
	return Item{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (s *dynamoStore) PutIfAbsent(ctx context.Context, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if isConditionalCheckFailed(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (s *dynamoStore) UpdateIfExists(ctx context.Context, pk, sk string, patch map[string]types.AttributeValue) error {
	if len(patch) == 0 {
		return nil
	}

	// Alias every attribute; some (name, status, key) are reserved words.
	sets := make([]string, 0, len(patch))
	names := make(map[string]string, len(patch))
	values := make(map[string]types.AttributeValue, len(patch))
	i := 0
	for attr, val := range patch {
		nameAlias := fmt.Sprintf("#a%d", i)
		valueAlias := fmt.Sprintf(":v%d", i)
		sets = append(sets, nameAlias+" = "+valueAlias)
		names[nameAlias] = attr
		values[valueAlias] = val
		i++
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       key(pk, sk),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if isConditionalCheckFailed(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (s *dynamoStore) DeleteIfExists(ctx context.Context, pk, sk string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 key(pk, sk),
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if isConditionalCheckFailed(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *dynamoStore) Delete(ctx context.Context, pk, sk string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       key(pk, sk),
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *dynamoStore) Get(ctx context.Context, pk, sk string, consistent bool) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key(pk, sk),
		ConsistentRead: aws.Bool(consistent),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return out.Item, nil
}

func (s *dynamoStore) QueryByPrefix(ctx context.Context, q Query) (*Page, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	values := map[string]types.AttributeValue{
		":pk":     &types.AttributeValueMemberS{Value: q.PartitionKey},
		":prefix": &types.AttributeValueMemberS{Value: q.SortKeyPrefix},
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: values,
		Limit:                     aws.Int32(limit),
		ScanIndexForward:          aws.Bool(!q.Descending),
		ConsistentRead:            aws.Bool(q.ConsistentRead),
		ExclusiveStartKey:         q.StartKey,
	}

	if q.FilterAttr != "" {
		values[":fv"] = &types.AttributeValueMemberS{Value: q.FilterValue}
		in.FilterExpression = aws.String("#fa = :fv")
		in.ExpressionAttributeNames = map[string]string{"#fa": q.FilterAttr}
	}

	out, err := s.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("query prefix %q: %w", q.SortKeyPrefix, err)
	}
	return &Page{Items: out.Items, LastKey: out.LastEvaluatedKey}, nil
}

func (s *dynamoStore) CountByPrefix(ctx context.Context, pk, prefix string) (int64, error) {
	var total int64
	var startKey Item

	for page := 0; page < MaxScanPages; page++ {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: pk},
				":prefix": &types.AttributeValueMemberS{Value: prefix},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("count prefix %q: %w", prefix, err)
		}
		total += int64(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
	return total, nil
}
