//go:build unit || !integration

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/alarm-relay/pkg/config"
	"github.com/bacalhau-project/alarm-relay/pkg/logger"
	"github.com/bacalhau-project/alarm-relay/pkg/version"
)

const testTopicARN = "arn:aws:sns:eu-west-1:123456789012:ec2-alerts"

const skippedEvent = `{
  "Records": [
    {
      "EventSource": "aws:sns",
      "EventVersion": "1.0",
      "Sns": {
        "Type": "Notification",
        "MessageId": "95df01b4-ee98-5cb9-9903-4c221d41eb5e",
        "TopicArn": "arn:aws:sns:eu-west-1:123456789012:cloudwatch-alarms",
        "Subject": "ALARM: \"billing\" in EU (Ireland)",
        "Message": "{\"AlarmName\":\"billing\",\"Trigger\":{\"MetricName\":\"EstimatedCharges\",\"Dimensions\":[{\"value\":\"USD\",\"name\":\"Currency\"}]}}",
        "Timestamp": "2024-01-02T12:00:00.000Z"
      }
    }
  ]
}`

type CLITestSuite struct {
	suite.Suite
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
	dir := s.T().TempDir()
	s.T().Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	s.T().Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	s.T().Setenv("AWS_EC2_METADATA_DISABLED", "true")
	s.T().Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	s.T().Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	s.T().Setenv(config.TopicARNEnvVar, "")
	s.T().Setenv("ALARM_RELAY_TOPIC_ARN", "")
	s.T().Setenv(config.SlackWebhookURLEnvVar, "")
}

func (s *CLITestSuite) execute(stdin string, args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CLITestSuite) TestVersion() {
	out, err := s.execute("", "version")
	s.Require().NoError(err)
	s.Equal("Alarm Relay Version: "+version.Get()+"\n", out)
}

func (s *CLITestSuite) TestInvokeSkippedRecordFromFile() {
	path := filepath.Join(s.T().TempDir(), "event.json")
	s.Require().NoError(os.WriteFile(path, []byte(skippedEvent), 0600))

	out, err := s.execute("", "invoke", "--event", path, "--topic-arn", testTopicARN, "--region", "eu-west-1")
	s.Require().NoError(err)
	s.JSONEq(`{"status":"done"}`, out)
}

func (s *CLITestSuite) TestInvokeRawAlarmFromStdin() {
	s.T().Setenv(config.TopicARNEnvVar, testTopicARN)

	out, err := s.execute(`{"AlarmName": "no dimensions"}`, "invoke", "--alarm", "--region", "eu-west-1")
	s.Require().NoError(err)
	s.JSONEq(`{"status":"done"}`, out)
}

func (s *CLITestSuite) TestInvokeMissingTopicARN() {
	_, err := s.execute(skippedEvent, "invoke", "--region", "eu-west-1")
	s.Require().ErrorIs(err, config.ErrMissingTopicARN)
}

func (s *CLITestSuite) TestInvokeInvalidEvent() {
	_, err := s.execute("not json", "invoke", "--topic-arn", testTopicARN, "--region", "eu-west-1")
	s.Require().Error(err)
}

func (s *CLITestSuite) TestInvokeMissingFile() {
	_, err := s.execute("", "invoke", "--event", filepath.Join(s.T().TempDir(), "missing.json"),
		"--topic-arn", testTopicARN)
	s.Require().Error(err)
}

func TestDecodeEvent(t *testing.T) {
	event, err := decodeEvent([]byte(skippedEvent), false)
	require.NoError(t, err)
	require.Len(t, event.Records, 1)
	require.Equal(t, "95df01b4-ee98-5cb9-9903-4c221d41eb5e", event.Records[0].SNS.MessageID)
	require.Contains(t, event.Records[0].SNS.Message, "EstimatedCharges")

	event, err = decodeEvent([]byte(`{"AlarmName":"x"}`), true)
	require.NoError(t, err)
	require.Len(t, event.Records, 1)
	require.Equal(t, `{"AlarmName":"x"}`, event.Records[0].SNS.Message)
	require.NotEmpty(t, event.Records[0].SNS.MessageID)
}

func TestNewNotifier(t *testing.T) {
	chain := newNotifier(config.Config{TopicARN: testTopicARN}, nil)
	require.Equal(t, 1, chain.Len())

	chain = newNotifier(config.Config{
		TopicARN:        testTopicARN,
		SlackWebhookURL: "https://hooks.slack.com/services/T/B/X",
	}, nil)
	require.Equal(t, 2, chain.Len())
}
