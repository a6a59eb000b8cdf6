//go:build unit || !integration

package awsclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	dir := s.T().TempDir()
	s.T().Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	s.T().Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	s.T().Setenv("AWS_EC2_METADATA_DISABLED", "true")
	s.T().Setenv("AWS_PROFILE", "")
	s.unsetenv("AWS_ACCESS_KEY_ID")
	s.unsetenv("AWS_SECRET_ACCESS_KEY")
	s.unsetenv("AWS_SESSION_TOKEN")
}

// unsetenv removes key for the duration of the test.
func (s *ClientTestSuite) unsetenv(key string) {
	if old, ok := os.LookupEnv(key); ok {
		s.Require().NoError(os.Unsetenv(key))
		s.T().Cleanup(func() { _ = os.Setenv(key, old) })
	}
}

func (s *ClientTestSuite) TestLoadConfigWithEndpoint() {
	ctx := context.Background()
	cfg, err := LoadConfig(ctx, Params{Region: "eu-west-1", Endpoint: "http://localhost:4566"})
	s.Require().NoError(err)
	s.Equal("eu-west-1", cfg.Region)

	endpoint, err := cfg.EndpointResolverWithOptions.ResolveEndpoint("EC2", "eu-west-1")
	s.Require().NoError(err)
	s.Equal("http://localhost:4566", endpoint.URL)
	s.Equal("eu-west-1", endpoint.SigningRegion)
	s.True(endpoint.HostnameImmutable)

	s.True(HasValidCredentials(ctx, cfg))
	creds, err := cfg.Credentials.Retrieve(ctx)
	s.Require().NoError(err)
	s.Equal(emulatorCredential, creds.AccessKeyID)

	s.NotNil(NewEC2Client(cfg))
	s.NotNil(NewSNSClient(cfg))
}

func (s *ClientTestSuite) TestLoadConfigKeepsEnvironmentCredentials() {
	s.T().Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	s.T().Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	ctx := context.Background()
	cfg, err := LoadConfig(ctx, Params{Region: "eu-west-1", Endpoint: "http://localhost:4566"})
	s.Require().NoError(err)

	creds, err := cfg.Credentials.Retrieve(ctx)
	s.Require().NoError(err)
	s.Equal("AKIDEXAMPLE", creds.AccessKeyID)
}

func (s *ClientTestSuite) TestLoadConfigWithoutEndpoint() {
	cfg, err := LoadConfig(context.Background(), Params{Region: "us-east-1"})
	s.Require().NoError(err)
	s.Equal("us-east-1", cfg.Region)
	s.Nil(cfg.EndpointResolverWithOptions)
}
