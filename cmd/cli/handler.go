package cli

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bacalhau-project/alarm-relay/pkg/awsclient"
	"github.com/bacalhau-project/alarm-relay/pkg/compute"
	"github.com/bacalhau-project/alarm-relay/pkg/config"
	"github.com/bacalhau-project/alarm-relay/pkg/notify"
	"github.com/bacalhau-project/alarm-relay/pkg/relay"
)

func newHandler(ctx context.Context, cfg config.Config) (*relay.Handler, error) {
	awsConfig, err := awsclient.LoadConfig(ctx, awsclient.Params{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	if !awsclient.HasValidCredentials(ctx, awsConfig) {
		log.Ctx(ctx).Warn().Msg("No AWS credentials found, EC2 and SNS calls will fail")
	}

	return relay.NewHandler(relay.HandlerParams{
		Config: cfg,
		Inspector: compute.NewClient(compute.ClientParams{
			EC2: awsclient.NewEC2Client(awsConfig),
		}),
		Notifier: newNotifier(cfg, awsclient.NewSNSClient(awsConfig)),
	})
}

func newNotifier(cfg config.Config, snsClient notify.SNSAPI) *notify.ChainedNotifier {
	chain := notify.NewChainedNotifier(notify.NewSNSNotifier(notify.SNSNotifierParams{
		SNS:      snsClient,
		TopicARN: cfg.TopicARN,
	}))
	if cfg.SlackWebhookURL != "" {
		chain.AddNotifiers(notify.NewSlackNotifier(notify.SlackNotifierParams{
			WebhookURL: cfg.SlackWebhookURL,
		}))
	}
	return chain
}
