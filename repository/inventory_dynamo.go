package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DynamoAPI is the subset of *dynamodb.Client the ledger uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoInventory keeps stock in a DynamoDB table keyed by variant_id.
type DynamoInventory struct {
	client DynamoAPI
	table  string
}

func NewDynamoInventory(client DynamoAPI, table string) *DynamoInventory {
	return &DynamoInventory{client: client, table: table}
}

type ddbStock struct {
	VariantID string `dynamodbav:"variant_id"`
	StockQty  int    `dynamodbav:"stock_qty"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func (r *DynamoInventory) key(variantID primitive.ObjectID) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"variant_id": variantID.Hex()})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	return key, nil
}

// Decrement subtracts qty under the condition that enough stock exists.
func (r *DynamoInventory) Decrement(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be >= 1")
	}
	key, err := r.key(variantID)
	if err != nil {
		return err
	}

	expr := "SET #stock = #stock - :qty, updated_at = :now"
	cond := "attribute_exists(variant_id) AND #stock >= :qty"

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 key,
		UpdateExpression:    &expr,
		ConditionExpression: &cond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qty": &types.AttributeValueMemberN{Value: fmt.Sprint(qty)},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ExpressionAttributeNames: map[string]string{"#stock": "stock_qty"},
		// Returned on condition failure so the caller can tell missing from short.
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if len(ccf.Item) == 0 {
				return ErrNotFound
			}
			return ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

func (r *DynamoInventory) Increment(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	key, err := r.key(variantID)
	if err != nil {
		return err
	}

	expr := "SET #stock = #stock + :qty, updated_at = :now"
	cond := "attribute_exists(variant_id)"

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 key,
		UpdateExpression:    &expr,
		ConditionExpression: &cond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qty": &types.AttributeValueMemberN{Value: fmt.Sprint(qty)},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ExpressionAttributeNames: map[string]string{"#stock": "stock_qty"},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

func (r *DynamoInventory) Available(ctx context.Context, variantID primitive.ObjectID) (int, error) {
	key, err := r.key(variantID)
	if err != nil {
		return 0, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            key,
		ConsistentRead: boolPtr(true),
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return 0, ErrNotFound
	}

	var item ddbStock
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("unmarshal item: %w", err)
	}
	return item.StockQty, nil
}

func (r *DynamoInventory) SetStock(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	item, err := attributevalue.MarshalMap(ddbStock{
		VariantID: variantID.Hex(),
		StockQty:  qty,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
