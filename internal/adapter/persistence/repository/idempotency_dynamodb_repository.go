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

const defaultIdempotencyTableName = "idempotency_records"

type idempotencyItem struct {
	ID                string `dynamodbav:"id"`
	Provider          string `dynamodbav:"provider"`
	ExternalID        string `dynamodbav:"external_id"`
	Status            string `dynamodbav:"status"`
	ProviderReference string `dynamodbav:"provider_reference,omitempty"`
	RecordedAt        string `dynamodbav:"recorded_at"`
}

// IdempotencyDynamoRepository persists terminal outcomes in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider#external_id)

type IdempotencyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IIdempotencyStore = (*IdempotencyDynamoRepository)(nil)

func NewIdempotencyDynamoRepository(ddb *dynamodb.Client) *IdempotencyDynamoRepository {
	return &IdempotencyDynamoRepository{
		ddb:       ddb,
		tableName: pkg.EnvDefault("IDEMPOTENCY_TABLE", defaultIdempotencyTableName),
	}
}

func (r *IdempotencyDynamoRepository) GetRecord(ctx context.Context, provider entities.Provider, externalID string) (entities.IdempotencyRecord, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: storageKey(string(provider), externalID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.IdempotencyRecord{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.IdempotencyRecord{}, false, nil
	}

	var it idempotencyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.IdempotencyRecord{}, false, err
	}
	return fromIdempotencyItem(it), true, nil
}

// PutIfAbsent writes the record once; when a prior writer got there first
// the stored record is returned instead and existed is true.
func (r *IdempotencyDynamoRepository) PutIfAbsent(ctx context.Context, rec entities.IdempotencyRecord) (entities.IdempotencyRecord, bool, error) {
	av, err := attributevalue.MarshalMap(toIdempotencyItem(rec))
	if err != nil {
		return entities.IdempotencyRecord{}, false, err
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
		stored, found, getErr := r.GetRecord(ctx, rec.Provider, rec.ExternalID)
		if getErr != nil {
			return entities.IdempotencyRecord{}, false, getErr
		}
		if !found {
			return entities.IdempotencyRecord{}, false, entities.ErrIdempotencyConflict
		}
		return stored, true, nil
	}
	if err != nil {
		return entities.IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func toIdempotencyItem(rec entities.IdempotencyRecord) idempotencyItem {
	return idempotencyItem{
		ID:                storageKey(string(rec.Provider), rec.ExternalID),
		Provider:          string(rec.Provider),
		ExternalID:        rec.ExternalID,
		Status:            string(rec.Status),
		ProviderReference: rec.ProviderReference,
		RecordedAt:        rec.RecordedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromIdempotencyItem(it idempotencyItem) entities.IdempotencyRecord {
	recorded, _ := time.Parse(time.RFC3339Nano, it.RecordedAt)
	return entities.IdempotencyRecord{
		Provider:          entities.Provider(it.Provider),
		ExternalID:        it.ExternalID,
		Status:            entities.OrderStatus(it.Status),
		ProviderReference: it.ProviderReference,
		RecordedAt:        recorded,
	}
}
