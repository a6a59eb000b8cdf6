package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

type SlackNotifierParams struct {
	WebhookURL string
	HTTPClient *http.Client
}

// SlackNotifier posts a notification to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewSlackNotifier(params SlackNotifierParams) *SlackNotifier {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SlackNotifier{
		webhookURL: params.WebhookURL,
		httpClient: httpClient,
	}
}

func (s *SlackNotifier) Notify(ctx context.Context, n Notification) error {
	log.Ctx(ctx).Debug().Msg("Sending formatted alert to Slack")
	err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.httpClient, NewSlackMessage(n))
	if err != nil {
		return errors.Wrap(err, "failed to post to slack webhook")
	}
	return nil
}

func NewSlackMessage(n Notification) *slack.WebhookMessage {
	fields := make([]slack.AttachmentField, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, slack.AttachmentField{Title: f.Title, Value: f.Value, Short: true})
	}
	attachment := slack.Attachment{
		Color:    "danger",
		Fallback: n.Subject,
		Title:    n.Subject,
		Fields:   fields,
		Ts:       json.Number(strconv.FormatInt(time.Now().Unix(), 10)),
	}
	if n.Details != "" {
		attachment.Text = "```" + n.Details + "```"
		attachment.MarkdownIn = []string{"text"}
	}

	return &slack.WebhookMessage{
		Text:        "*" + n.Subject + "*",
		Attachments: []slack.Attachment{attachment},
	}
}

var _ Notifier = (*SlackNotifier)(nil)
