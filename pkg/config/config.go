// Package config resolves the relay's settings from flags and the
// environment.
package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	environmentVariablePrefix = "ALARM_RELAY"

	KeyTopicARN        = "topic_arn"
	KeyRegion          = "region"
	KeyEndpoint        = "endpoint"
	KeySlackWebhookURL = "slack_webhook_url"

	// TopicARNEnvVar is the variable the Lambda function is deployed with.
	TopicARNEnvVar        = "SNS_TOPIC_ARN"
	SlackWebhookURLEnvVar = "SLACK_WEBHOOK_URL"
)

var (
	ErrMissingTopicARN = errors.New("notification topic ARN is not configured (set " + TopicARNEnvVar + ")")

	environmentVariableReplace = strings.NewReplacer(".", "_", "-", "_")
	configDecoderHook          = viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
)

type Config struct {
	// TopicARN is the SNS topic alerts are published to.
	TopicARN string `mapstructure:"topic_arn"`
	// Region overrides the AWS region from the SDK's default chain.
	Region string `mapstructure:"region"`
	// Endpoint overrides the AWS endpoint for every service, e.g. LocalStack.
	Endpoint string `mapstructure:"endpoint"`
	// SlackWebhookURL enables an additional Slack notification when set.
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.TopicARN) == "" {
		return ErrMissingTopicARN
	}
	return nil
}

// New returns a viper instance reading ALARM_RELAY_* variables, plus the
// unprefixed variable names the relay has always been deployed with.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(environmentVariablePrefix)
	v.SetEnvKeyReplacer(environmentVariableReplace)
	v.AutomaticEnv()

	// BindEnv only fails when called without a key.
	_ = v.BindEnv(KeyTopicARN, TopicARNEnvVar, environmentVariablePrefix+"_TOPIC_ARN")
	_ = v.BindEnv(KeyRegion, environmentVariablePrefix+"_REGION")
	_ = v.BindEnv(KeyEndpoint, environmentVariablePrefix+"_ENDPOINT")
	_ = v.BindEnv(KeySlackWebhookURL, SlackWebhookURLEnvVar, environmentVariablePrefix+"_SLACK_WEBHOOK_URL")
	return v
}

// BindFlags makes flags take precedence over the environment. Flag names use
// dashes in place of the key's underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyTopicARN, KeyRegion, KeyEndpoint, KeySlackWebhookURL} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind flag %s", flag.Name)
		}
	}
	return nil
}

// Load resolves and validates the configuration.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, configDecoderHook); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
