//go:build unit || !integration

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/require"

	"github.com/bacalhau-project/alarm-relay/pkg/logger"
)

const topicARN = "arn:aws:sns:eu-west-1:123456789012:ec2-alerts"

var testNotification = Notification{
	Subject:    "EC2 Status Check Failed: web1 (i-abc123 !!!!!!)",
	Body:       "EC2 Status Check Failed\n\nInstance ID: i-abc123\n",
	InstanceID: "i-abc123",
	Fields: []Field{
		{Title: "Instance ID", Value: "i-abc123"},
		{Title: "Instance Name", Value: "web1"},
	},
	Details: "boot ok",
}

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

type recordingNotifier struct {
	received []Notification
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.received = append(r.received, n)
	return r.err
}

func TestSNSNotifier(t *testing.T) {
	logger.ConfigureTestLogging(t)
	client := &fakeSNS{}
	notifier := NewSNSNotifier(SNSNotifierParams{SNS: client, TopicARN: topicARN})

	require.NoError(t, notifier.Notify(context.Background(), testNotification))
	require.Len(t, client.inputs, 1)

	input := client.inputs[0]
	require.Equal(t, topicARN, aws.ToString(input.TopicArn))
	require.Equal(t, testNotification.Subject, aws.ToString(input.Subject))
	require.Equal(t, testNotification.Body, aws.ToString(input.Message))
	require.Contains(t, input.MessageAttributes, instanceIDAttribute)
	require.Equal(t, "i-abc123", aws.ToString(input.MessageAttributes[instanceIDAttribute].StringValue))
}

func TestSNSNotifierWithoutInstanceID(t *testing.T) {
	logger.ConfigureTestLogging(t)
	client := &fakeSNS{}
	notifier := NewSNSNotifier(SNSNotifierParams{SNS: client, TopicARN: topicARN})

	require.NoError(t, notifier.Notify(context.Background(), Notification{Subject: "s", Body: "b"}))
	require.Empty(t, client.inputs[0].MessageAttributes)
}

func TestSNSNotifierError(t *testing.T) {
	logger.ConfigureTestLogging(t)
	publishErr := errors.New("AuthorizationError")
	notifier := NewSNSNotifier(SNSNotifierParams{SNS: &fakeSNS{err: publishErr}, TopicARN: topicARN})

	err := notifier.Notify(context.Background(), testNotification)
	require.ErrorIs(t, err, publishErr)
	require.Contains(t, err.Error(), topicARN)
}

func TestSlackNotifier(t *testing.T) {
	logger.ConfigureTestLogging(t)
	var received slack.WebhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(SlackNotifierParams{WebhookURL: server.URL, HTTPClient: server.Client()})
	require.NoError(t, notifier.Notify(context.Background(), testNotification))

	require.Contains(t, received.Text, testNotification.Subject)
	require.Len(t, received.Attachments, 1)
	attachment := received.Attachments[0]
	require.Equal(t, "danger", attachment.Color)
	require.Len(t, attachment.Fields, 2)
	require.Equal(t, "Instance Name", attachment.Fields[1].Title)
	require.Equal(t, "web1", attachment.Fields[1].Value)
	require.Contains(t, attachment.Text, "boot ok")
}

func TestSlackNotifierError(t *testing.T) {
	logger.ConfigureTestLogging(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(SlackNotifierParams{WebhookURL: server.URL})
	require.Error(t, notifier.Notify(context.Background(), testNotification))
}

func TestChainedNotifier(t *testing.T) {
	logger.ConfigureTestLogging(t)
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	chain := NewChainedNotifier(first)
	chain.AddNotifiers(second)

	require.Equal(t, 2, chain.Len())
	require.NoError(t, chain.Notify(context.Background(), testNotification))
	require.Equal(t, []Notification{testNotification}, first.received)
	require.Equal(t, []Notification{testNotification}, second.received)
}

func TestChainedNotifierContinuesAfterError(t *testing.T) {
	logger.ConfigureTestLogging(t)
	firstErr := errors.New("sns down")
	secondErr := errors.New("slack down")
	first := &recordingNotifier{err: firstErr}
	second := &recordingNotifier{err: secondErr}
	third := &recordingNotifier{}

	err := NewChainedNotifier(first, second, third).Notify(context.Background(), testNotification)
	require.ErrorIs(t, err, firstErr)
	require.ErrorIs(t, err, secondErr)
	require.Len(t, third.received, 1)
}

func TestChainedNotifierEmpty(t *testing.T) {
	logger.ConfigureTestLogging(t)
	require.Error(t, NewChainedNotifier().Notify(context.Background(), testNotification))
}
