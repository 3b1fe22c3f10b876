package database

import (
	"context"
	"testing"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AWS_REGION", "")
		t.Setenv("AWS_ACCESS_KEY_ID", "")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "")
		t.Setenv("DYNAMODB_ENDPOINT", "")

		opts := OptionsFromEnv()
		if opts.Region != "us-east-1" {
			t.Fatalf("expected default region, got %s", opts.Region)
		}
		if opts.AccessKey != "local" || opts.SecretKey != "local" {
			t.Fatalf("expected local credentials, got %s/%s", opts.AccessKey, opts.SecretKey)
		}
		if opts.Endpoint != "" {
			t.Fatalf("expected no endpoint override, got %s", opts.Endpoint)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AWS_REGION", "sa-east-1")
		t.Setenv("AWS_ACCESS_KEY_ID", "key")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
		t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")

		opts := OptionsFromEnv()
		if opts.Region != "sa-east-1" {
			t.Fatalf("expected sa-east-1, got %s", opts.Region)
		}
		if opts.AccessKey != "key" || opts.SecretKey != "secret" {
			t.Fatalf("unexpected credentials: %s/%s", opts.AccessKey, opts.SecretKey)
		}
		if opts.Endpoint != "http://dynamodb:8000" {
			t.Fatalf("unexpected endpoint: %s", opts.Endpoint)
		}
	})
}

func TestNewDynamoDBClient(t *testing.T) {
	t.Run("endpoint override applied", func(t *testing.T) {
		client := NewDynamoDBClient(context.Background(), Options{
			Region:    "us-east-1",
			Endpoint:  "http://localhost:8000",
			AccessKey: "local",
			SecretKey: "local",
		})
		base := client.Options().BaseEndpoint
		if base == nil || *base != "http://localhost:8000" {
			t.Fatalf("expected endpoint override, got %v", base)
		}
	})

	t.Run("no override by default", func(t *testing.T) {
		client := NewDynamoDBClient(context.Background(), Options{
			Region:    "us-east-1",
			AccessKey: "local",
			SecretKey: "local",
		})
		if client.Options().BaseEndpoint != nil {
			t.Fatalf("expected no endpoint override, got %v", *client.Options().BaseEndpoint)
		}
	})
}
