package repository

import (
	"context"
	"errors"
	"time"

	"paycore/internal/domain/entities"
	"paycore/internal/usecase/interfaces"
	"paycore/pkg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentOrdersTableName = "payment_orders"

type paymentOrderItem struct {
	ID                string `dynamodbav:"id"`
	Provider          string `dynamodbav:"provider"`
	ExternalID        string `dynamodbav:"external_id"`
	Status            string `dynamodbav:"status"`
	Amount            string `dynamodbav:"amount"`
	Currency          string `dynamodbav:"currency"`
	ClientArtifact    string `dynamodbav:"client_artifact,omitempty"`
	ProviderReference string `dynamodbav:"provider_reference,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// PaymentOrderDynamoRepository persists PaymentOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider#external_id)
//
// Status transitions go through a conditional UpdateItem so a terminal
// order can be written by exactly one caller.

type PaymentOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentOrderStore = (*PaymentOrderDynamoRepository)(nil)

func NewPaymentOrderDynamoRepository(ddb *dynamodb.Client) *PaymentOrderDynamoRepository {
	return &PaymentOrderDynamoRepository{
		ddb:       ddb,
		tableName: pkg.EnvDefault("PAYMENT_ORDERS_TABLE", defaultPaymentOrdersTableName),
	}
}

func (r *PaymentOrderDynamoRepository) Get(ctx context.Context, provider entities.Provider, externalID string) (entities.PaymentOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: storageKey(string(provider), externalID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentOrder{}, entities.ErrOrderNotFound
	}

	var it paymentOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentOrder{}, err
	}
	return fromPaymentOrderItem(it), nil
}

func (r *PaymentOrderDynamoRepository) Put(ctx context.Context, order entities.PaymentOrder) error {
	av, err := attributevalue.MarshalMap(toPaymentOrderItem(order))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return entities.ErrOrderExists
	}
	return err
}

func (r *PaymentOrderDynamoRepository) CompareAndSetStatus(ctx context.Context, provider entities.Provider, externalID string, from, to entities.OrderStatus, providerReference string) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: storageKey(string(provider), externalID)},
		},
		UpdateExpression:    aws.String("SET #status = :to, #ref = :ref, #updated = :updated"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#status":  "status",
			"#ref":     "provider_reference",
			"#updated": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":    &types.AttributeValueMemberS{Value: string(from)},
			":to":      &types.AttributeValueMemberS{Value: string(to)},
			":ref":     &types.AttributeValueMemberS{Value: providerReference},
			":updated": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func toPaymentOrderItem(o entities.PaymentOrder) paymentOrderItem {
	return paymentOrderItem{
		ID:                storageKey(string(o.Provider), o.ExternalID),
		Provider:          string(o.Provider),
		ExternalID:        o.ExternalID,
		Status:            string(o.Status),
		Amount:            o.Amount,
		Currency:          o.Currency,
		ClientArtifact:    o.ClientArtifact,
		ProviderReference: o.ProviderReference,
		CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentOrderItem(it paymentOrderItem) entities.PaymentOrder {
	created, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updated, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentOrder{
		Provider:          entities.Provider(it.Provider),
		ExternalID:        it.ExternalID,
		Status:            entities.OrderStatus(it.Status),
		Amount:            it.Amount,
		Currency:          it.Currency,
		ClientArtifact:    it.ClientArtifact,
		ProviderReference: it.ProviderReference,
		CreatedAt:         created,
		UpdatedAt:         updated,
	}
}
