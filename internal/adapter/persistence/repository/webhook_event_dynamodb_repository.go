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

const defaultWebhookEventsTableName = "webhook_events"

type webhookEventItem struct {
	ID         string `dynamodbav:"id"`
	Provider   string `dynamodbav:"provider"`
	EventID    string `dynamodbav:"event_id"`
	Type       string `dynamodbav:"type"`
	OrderID    string `dynamodbav:"order_id"`
	RawPayload string `dynamodbav:"raw_payload,omitempty"`
	ReceivedAt string `dynamodbav:"received_at"`
}

// WebhookEventDynamoRepository records processed webhook events in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider#event_id)
//
// WasProcessed is the consistent read the webhook path checks before doing
// any work; MarkProcessed is written only after the order transition is
// durable, and its conditional put keeps concurrent markers first-writer-
// wins. The raw payload is kept verbatim for traceability.

type WebhookEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWebhookEventStore = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb *dynamodb.Client) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{
		ddb:       ddb,
		tableName: pkg.EnvDefault("WEBHOOK_EVENTS_TABLE", defaultWebhookEventsTableName),
	}
}

func (r *WebhookEventDynamoRepository) WasProcessed(ctx context.Context, provider entities.Provider, eventID string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: storageKey(string(provider), eventID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}

func (r *WebhookEventDynamoRepository) MarkProcessed(ctx context.Context, event entities.WebhookEvent) (bool, error) {
	av, err := attributevalue.MarshalMap(webhookEventItem{
		ID:         storageKey(string(event.Provider), event.EventID),
		Provider:   string(event.Provider),
		EventID:    event.EventID,
		Type:       string(event.Type),
		OrderID:    event.OrderID,
		RawPayload: string(event.RawPayload),
		ReceivedAt: event.ReceivedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return false, err
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
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
