// Package notify delivers formatted alerts to SNS topics and chat webhooks.
package notify

import "context"

//go:generate mockgen --source types.go --destination mock_notify/mock_notify.go --package mock_notify

type Field struct {
	Title string
	Value string
}

// Notification is one formatted alert. Subject and Body are what SNS
// subscribers (e.g. email) receive; Fields and Details carry the same content
// in a structured form for sinks that can render it.
type Notification struct {
	Subject    string
	Body       string
	InstanceID string
	Fields     []Field
	Details    string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
