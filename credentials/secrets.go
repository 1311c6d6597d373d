package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// accessDeniedCode is the error code the secret store answers with for forbidden secrets
const accessDeniedCode = "AccessDeniedException"

// SecretStore is the part of the secrets manager client used to read secrets
type SecretStore interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// StoreFactory builds a SecretStore for a region
type StoreFactory func(ctx context.Context, region string) (SecretStore, error)

// NewSecretStore creates a secrets manager client for region using the default AWS credential chain
func NewSecretStore(ctx context.Context, region string) (SecretStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: could not load AWS configuration: %v", ErrSecretStore, err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// getSecret fetches a single secret, classifying access denied apart from other failures
func getSecret(ctx context.Context, store SecretStore, id string) (*secretsmanager.GetSecretValueOutput, error) {
	out, err := store.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err == nil {
		return out, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == accessDeniedCode {
		return nil, fmt.Errorf("%w '%v': %v", ErrAccessDenied, id, err)
	}
	return nil, fmt.Errorf("%w '%v': %v", ErrSecretStore, id, err)
}
