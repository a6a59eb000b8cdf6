// Package report turns an instance description and its console log into the
// alert sent to subscribers.
package report

import (
	"fmt"
	"strings"

	"github.com/bacalhau-project/alarm-relay/pkg/compute"
	"github.com/bacalhau-project/alarm-relay/pkg/notify"
)

const (
	// MaxLogChars bounds the log excerpt well below the 256 KiB SNS message
	// size limit.
	MaxLogChars = 1000
	// MaxSubjectChars is the SNS subject length limit.
	MaxSubjectChars   = 100
	NoLogsPlaceholder = "(No logs found)"

	title = "EC2 Status Check Failed"
)

// New formats the alert for instance. present reports whether EC2 returned
// any console output at all.
func New(instance compute.Instance, consoleOutput string, present bool) notify.Notification {
	if !present {
		consoleOutput = NoLogsPlaceholder
	}
	logs := Truncate(strings.TrimSpace(consoleOutput), MaxLogChars)
	name := instance.DisplayName()
	address := instance.PublicAddress()

	var body strings.Builder
	body.WriteString(title + "\n\n")
	fmt.Fprintf(&body, "Instance ID: %s\n", instance.ID)
	fmt.Fprintf(&body, "Instance Name: %s\n", name)
	fmt.Fprintf(&body, "Public IP: %s\n\n", address)
	body.WriteString("System Logs:\n")
	body.WriteString(logs + "\n")

	return notify.Notification{
		Subject:    subject(name, instance.ID),
		Body:       body.String(),
		InstanceID: instance.ID,
		Fields: []notify.Field{
			{Title: "Instance ID", Value: instance.ID},
			{Title: "Instance Name", Value: name},
			{Title: "Public IP", Value: address},
		},
		Details: logs,
	}
}

// subject shortens the instance name, never the ID, to stay within the SNS
// subject limit.
func subject(name, id string) string {
	prefix := title + ": "
	suffix := fmt.Sprintf(" (%s !!!!!!)", id)
	room := MaxSubjectChars - len([]rune(prefix)) - len([]rune(suffix))
	if room < 0 {
		room = 0
	}
	return Truncate(prefix+Truncate(name, room)+suffix, MaxSubjectChars)
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
