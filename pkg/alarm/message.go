// Package alarm decodes the CloudWatch alarm notifications that SNS delivers
// to the relay.
package alarm

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// InstanceIDDimension is the dimension name CloudWatch uses for EC2 status
// check alarms.
const InstanceIDDimension = "InstanceId"

var ErrEmptyMessage = errors.New("alarm message is empty")

// Message is the subset of a CloudWatch alarm notification the relay reads.
// Every field is optional; anything not listed here is ignored.
type Message struct {
	AlarmName string   `json:"AlarmName,omitempty"`
	Trigger   *Trigger `json:"Trigger,omitempty"`
}

type Trigger struct {
	Dimensions []Dimension `json:"Dimensions,omitempty"`
}

// Dimension keys are lower case in the SNS payload, unlike the rest of the
// message.
type Dimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Decode parses the text carried in an SNS record's Message field.
func Decode(text string) (Message, error) {
	var msg Message
	if strings.TrimSpace(text) == "" {
		return msg, ErrEmptyMessage
	}
	if err := json.Unmarshal([]byte(text), &msg); err != nil {
		return Message{}, errors.Wrap(err, "failed to decode alarm message")
	}
	return msg, nil
}

// InstanceID returns the value of the first InstanceId dimension. Duplicate
// dimensions are not checked for.
func (m Message) InstanceID() (string, bool) {
	if m.Trigger == nil {
		return "", false
	}
	for _, dim := range m.Trigger.Dimensions {
		if dim.Name == InstanceIDDimension {
			return dim.Value, dim.Value != ""
		}
	}
	return "", false
}
