// Package relay turns CloudWatch status check alarms delivered over SNS into
// readable alerts about the affected EC2 instance.
package relay

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/bacalhau-project/alarm-relay/pkg/alarm"
	"github.com/bacalhau-project/alarm-relay/pkg/config"
	"github.com/bacalhau-project/alarm-relay/pkg/logger"
	"github.com/bacalhau-project/alarm-relay/pkg/notify"
	"github.com/bacalhau-project/alarm-relay/pkg/report"
	"github.com/bacalhau-project/alarm-relay/pkg/telemetry"
)

type HandlerParams struct {
	Config    config.Config
	Inspector Inspector
	Notifier  notify.Notifier
}

type Handler struct {
	config    config.Config
	inspector Inspector
	notifier  notify.Notifier
	records   *telemetry.Counter
}

func NewHandler(params HandlerParams) (*Handler, error) {
	records, err := telemetry.NewCounter(telemetry.Meter(), "alarm_relay.records",
		"Number of alarm notification records handled, by outcome")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create records counter")
	}
	return &Handler{
		config:    params.Config,
		inspector: params.Inspector,
		notifier:  params.Notifier,
		records:   records,
	}, nil
}

// Handle processes every record of the batch in order. Failures are confined
// to the record they happened in; the returned error is only ever a
// configuration error.
func (h *Handler) Handle(ctx context.Context, event events.SNSEvent) (Response, error) {
	if err := h.config.Validate(); err != nil {
		return Response{}, err
	}

	ctx, span := telemetry.NewSpan(ctx, "relay.Handle",
		oteltrace.WithAttributes(attribute.Int("records", len(event.Records))))
	defer span.End()

	var published, skipped, failed int
	for i, record := range event.Records {
		result := h.processRecord(ctx, i, record)
		h.records.Inc(ctx, attribute.String("outcome", result.Outcome.String()))

		switch result.Outcome {
		case OutcomePublished:
			published++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
			logMsg := log.Ctx(ctx).Error().
				Err(result.Err).
				Int("Record", result.Index).
				Str("MessageID", result.MessageID).
				Str("InstanceID", result.InstanceID)
			var apiErr smithy.APIError
			if errors.As(result.Err, &apiErr) {
				logMsg = logMsg.Str("ErrorCode", apiErr.ErrorCode())
			}
			logMsg.Msg("Error processing record")
		}
	}

	log.Ctx(ctx).Info().
		Int("Published", published).
		Int("Skipped", skipped).
		Int("Failed", failed).
		Msg("Finished processing alarm notifications")
	return Response{Status: StatusDone}, nil
}

func (h *Handler) processRecord(ctx context.Context, index int, record events.SNSEventRecord) (result RecordResult) {
	result = RecordResult{Index: index, MessageID: record.SNS.MessageID}

	ctx = logger.ContextWithRecordLogger(ctx, record.SNS.MessageID)
	ctx, span := telemetry.NewSpan(ctx, "relay.processRecord",
		oteltrace.WithAttributes(attribute.String("sns.message_id", record.SNS.MessageID)))
	defer func() {
		span.SetAttributes(attribute.String("outcome", result.Outcome.String()))
		telemetry.RecordError(span, result.Err)
		span.End()
	}()

	fail := func(err error) RecordResult {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	msg, err := alarm.Decode(record.SNS.Message)
	if err != nil {
		return fail(err)
	}

	instanceID, ok := msg.InstanceID()
	if !ok {
		log.Ctx(ctx).Info().Str("AlarmName", msg.AlarmName).Msg("No instance ID found in alarm message")
		result.Outcome = OutcomeSkipped
		return result
	}
	result.InstanceID = instanceID
	span.SetAttributes(attribute.String("ec2.instance_id", instanceID))

	instance, err := h.inspector.DescribeInstance(ctx, instanceID)
	if err != nil {
		return fail(err)
	}
	if instance.ID == "" {
		instance.ID = instanceID
	}

	output, present, err := h.inspector.ConsoleOutput(ctx, instanceID)
	if err != nil {
		return fail(err)
	}

	if err = h.notifier.Notify(ctx, report.New(instance, output, present)); err != nil {
		return fail(err)
	}
	result.Outcome = OutcomePublished
	return result
}
