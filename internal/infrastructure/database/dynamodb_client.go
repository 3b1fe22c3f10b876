package database

import (
	"context"
	"log"
	"os"

	"paycore/pkg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Options is the connection surface for the payment stores: region and
// credentials for real AWS, plus an optional endpoint override pointing the
// client at a local DynamoDB instance.
type Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// OptionsFromEnv reads AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
// and DYNAMODB_ENDPOINT. Local DynamoDB ignores credentials but the SDK
// refuses to sign requests without them, hence the "local" fallbacks.
func OptionsFromEnv() Options {
	return Options{
		Region:    pkg.EnvDefault("AWS_REGION", "us-east-1"),
		Endpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		AccessKey: pkg.EnvDefault("AWS_ACCESS_KEY_ID", "local"),
		SecretKey: pkg.EnvDefault("AWS_SECRET_ACCESS_KEY", "local"),
	}
}

// ConnectDynamoDB builds the client backing the payment order, idempotency
// record and webhook event repositories.
func ConnectDynamoDB() *dynamodb.Client {
	return NewDynamoDBClient(context.Background(), OptionsFromEnv())
}

func NewDynamoDBClient(ctx context.Context, opts Options) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		log.Fatalf("[payment][database] dynamodb config failed: %v", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			log.Printf("[payment][database] dynamodb endpoint override %s", opts.Endpoint)
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
}
