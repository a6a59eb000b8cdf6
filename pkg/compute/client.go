// Package compute reads the EC2 instance details that go into an alert.
package compute

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrInstanceNotFound = errors.New("instance not found")

// EC2API is the subset of *ec2.Client used by Client.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput,
		optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	GetConsoleOutput(ctx context.Context, params *ec2.GetConsoleOutputInput,
		optFns ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error)
}

type ClientParams struct {
	EC2 EC2API
}

type Client struct {
	ec2 EC2API
}

func NewClient(params ClientParams) *Client {
	return &Client{ec2: params.EC2}
}

// DescribeInstance returns the first instance matching id. An empty result is
// reported as ErrInstanceNotFound.
func (c *Client) DescribeInstance(ctx context.Context, id string) (Instance, error) {
	out, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return Instance{}, errors.Wrapf(err, "failed to describe instance %s", id)
	}
	for _, reservation := range out.Reservations {
		if len(reservation.Instances) > 0 {
			return newInstance(reservation.Instances[0]), nil
		}
	}
	return Instance{}, errors.Wrapf(ErrInstanceNotFound, "describe instances returned no match for %s", id)
}

// ConsoleOutput returns the latest console output of the instance. The bool
// is false when EC2 has no output for it.
func (c *Client) ConsoleOutput(ctx context.Context, id string) (string, bool, error) {
	out, err := c.ec2.GetConsoleOutput(ctx, &ec2.GetConsoleOutputInput{
		InstanceId: aws.String(id),
		Latest:     aws.Bool(true),
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get console output of instance %s", id)
	}
	if out.Output == nil {
		return "", false, nil
	}
	return decodeConsoleOutput(ctx, *out.Output), true, nil
}

// EC2 returns console output base64 encoded. Bytes that are not valid UTF-8
// are replaced since SNS rejects them.
func decodeConsoleOutput(ctx context.Context, output string) string {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(output))
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("console output is not base64, using it as is")
		return output
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD")
}
