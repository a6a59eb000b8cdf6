package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const instanceIDAttribute = "InstanceId"

// SNSAPI is the subset of *sns.Client used by SNSNotifier.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSNotifierParams struct {
	SNS      SNSAPI
	TopicARN string
}

// SNSNotifier publishes a notification's subject and body to one topic.
type SNSNotifier struct {
	sns      SNSAPI
	topicARN string
}

func NewSNSNotifier(params SNSNotifierParams) *SNSNotifier {
	return &SNSNotifier{
		sns:      params.SNS,
		topicARN: params.TopicARN,
	}
}

func (s *SNSNotifier) Notify(ctx context.Context, n Notification) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(n.Subject),
		Message:  aws.String(n.Body),
	}
	if n.InstanceID != "" {
		// lets subscribers filter on the instance
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			instanceIDAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.InstanceID),
			},
		}
	}

	log.Ctx(ctx).Info().Str("TopicARN", s.topicARN).Msg("Sending formatted alert to SNS")
	out, err := s.sns.Publish(ctx, input)
	if err != nil {
		return errors.Wrapf(err, "failed to publish to %s", s.topicARN)
	}
	if out != nil {
		log.Ctx(ctx).Debug().Str("SNSMessageID", aws.ToString(out.MessageId)).Msg("Published alert")
	}
	return nil
}

var _ Notifier = (*SNSNotifier)(nil)
