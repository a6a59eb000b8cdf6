package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/alarm-relay/pkg/config"
	"github.com/bacalhau-project/alarm-relay/pkg/logger"
)

type InvokeOptions struct {
	EventFile string
	// RawAlarm treats the input as a single CloudWatch alarm message rather
	// than an SNS event.
	RawAlarm bool
}

func newInvokeCmd(v *viper.Viper) *cobra.Command {
	opts := &InvokeOptions{}

	invokeCmd := &cobra.Command{
		Use:   "invoke",
		Short: "Handle one SNS event locally, as the Lambda function would",
		Example: `  # replay an SNS event captured from the Lambda console
  alarm-relay invoke --event event.json

  # send a single alarm message, read from stdin
  cat alarm.json | alarm-relay invoke --alarm --event -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvoke(cmd, v, opts)
		},
	}
	invokeCmd.Flags().StringVar(&opts.EventFile, "event", "-",
		`Path to the event JSON, or - for stdin.`)
	invokeCmd.Flags().BoolVar(&opts.RawAlarm, "alarm", false,
		`The input is a CloudWatch alarm message; wrap it in a single-record SNS event.`)
	return invokeCmd
}

func runInvoke(cmd *cobra.Command, v *viper.Viper, opts *InvokeOptions) error {
	ctx := logger.ContextWithInvocationLogger(cmd.Context(), uuid.NewString())

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, opts.EventFile)
	if err != nil {
		return err
	}
	event, err := decodeEvent(input, opts.RawAlarm)
	if err != nil {
		return err
	}

	handler, err := newHandler(ctx, cfg)
	if err != nil {
		return err
	}
	response, err := handler.Handle(ctx, event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(response)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read event file %s", path)
	}
	return b, nil
}

func decodeEvent(input []byte, rawAlarm bool) (events.SNSEvent, error) {
	if rawAlarm {
		return events.SNSEvent{Records: []events.SNSEventRecord{{
			EventSource: "aws:sns",
			SNS: events.SNSEntity{
				MessageID: uuid.NewString(),
				Type:      "Notification",
				Message:   string(input),
			},
		}}}, nil
	}

	var event events.SNSEvent
	if err := json.Unmarshal(input, &event); err != nil {
		return events.SNSEvent{}, errors.Wrap(err, "failed to decode SNS event")
	}
	return event, nil
}
