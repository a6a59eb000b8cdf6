package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/alarm-relay/pkg/config"
	"github.com/bacalhau-project/alarm-relay/pkg/logger"
	"github.com/bacalhau-project/alarm-relay/pkg/relay"
	"github.com/bacalhau-project/alarm-relay/pkg/telemetry"
	"github.com/bacalhau-project/alarm-relay/pkg/version"
)

func NewRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "alarm-relay",
		Short: "Relay EC2 status check alarms to an SNS topic",
		Long: `Receives CloudWatch alarm notifications from SNS, looks up the affected
EC2 instance and its console output, and publishes a readable alert to the
configured notification topic.

Without a subcommand the Lambda runtime is started.`,
		Version:      version.Get(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			telemetry.SetupFromEnvs()
			return config.BindFlags(v, cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if err := telemetry.Cleanup(); err != nil {
				log.Ctx(cmd.Context()).Warn().Err(err).Msg("failed to clean up telemetry")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return startLambda(cmd.Context(), v)
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("Alarm Relay Version: %s\n", version.Get()))

	rootCmd.PersistentFlags().String("topic-arn", "",
		`The SNS topic alerts are published to. Defaults to the `+config.TopicARNEnvVar+` environment variable.`)
	rootCmd.PersistentFlags().String("region", "",
		`The AWS region to use. Defaults to the SDK's region resolution.`)
	rootCmd.PersistentFlags().String("endpoint", "",
		`Override the AWS endpoint for EC2 and SNS, e.g. http://localhost:4566 for LocalStack.`)
	rootCmd.PersistentFlags().String("slack-webhook-url", "",
		`Also post alerts to this Slack incoming webhook.`)

	rootCmd.AddCommand(newInvokeCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startLambda resolves the configuration once, before the runtime starts, so
// a missing topic ARN fails the function's initialisation.
func startLambda(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	handler, err := newHandler(ctx, cfg)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("Version", version.Get()).Msg("Starting Lambda runtime")
	lambda.Start(func(ctx context.Context, event events.SNSEvent) (relay.Response, error) {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			ctx = logger.ContextWithInvocationLogger(ctx, lc.AwsRequestID)
		}
		defer func() {
			if err := telemetry.Flush(ctx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("failed to flush telemetry")
			}
		}()
		return handler.Handle(ctx, event)
	})
	return nil
}
