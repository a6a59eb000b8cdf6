// Package awsclient builds the AWS SDK clients the relay talks to.
package awsclient

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Credentials LocalStack and similar emulators accept.
const emulatorCredential = "test"

type Params struct {
	Region   string
	Endpoint string
}

// LoadConfig resolves the AWS configuration through the SDK's default chain
// (environment, shared config, the Lambda execution role), then applies the
// region and endpoint overrides.
func LoadConfig(ctx context.Context, params Params) (aws.Config, error) {
	var optFns []func(*config.LoadOptions) error
	if params.Region != "" {
		optFns = append(optFns, config.WithRegion(params.Region))
	}
	if params.Endpoint != "" {
		optFns = append(optFns, config.WithEndpointResolverWithOptions(endpointResolver(params.Endpoint)))
		if _, ok := os.LookupEnv("AWS_ACCESS_KEY_ID"); !ok {
			optFns = append(optFns, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(emulatorCredential, emulatorCredential, "")))
		}
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load AWS configuration")
	}
	return cfg, nil
}

func endpointResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return func(service, region string, options ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			PartitionID:       "aws",
			URL:               endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	}
}

// HasValidCredentials returns true if the AWS config has valid credentials.
func HasValidCredentials(ctx context.Context, cfg aws.Config) bool {
	if cfg.Credentials == nil {
		return false
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("Failed to check if we have valid AWS credentials")
		return false
	}
	return creds.HasKeys()
}

func NewEC2Client(cfg aws.Config) *ec2.Client {
	return ec2.NewFromConfig(cfg)
}

func NewSNSClient(cfg aws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}
