package relay

import (
	"context"

	"github.com/bacalhau-project/alarm-relay/pkg/compute"
)

//go:generate mockgen --source types.go --destination mock_relay/mock_relay.go --package mock_relay

// Inspector looks up the instance named by an alarm.
type Inspector interface {
	DescribeInstance(ctx context.Context, id string) (compute.Instance, error)
	ConsoleOutput(ctx context.Context, id string) (string, bool, error)
}

// StatusDone is the only status the handler reports.
const StatusDone = "done"

// Response is returned to the Lambda runtime once the whole batch has been
// handled, whatever happened to the individual records.
type Response struct {
	Status string `json:"status"`
}

type Outcome int

const (
	OutcomePublished Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecordResult is what happened to one record of a batch.
type RecordResult struct {
	Index      int
	MessageID  string
	InstanceID string
	Outcome    Outcome
	Err        error
}

var _ Inspector = (*compute.Client)(nil)
