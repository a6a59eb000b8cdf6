package compute

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const (
	NameTagKey            = "Name"
	NoNamePlaceholder     = "NoName"
	NoPublicIPPlaceholder = "No Public IP"
)

type Tag struct {
	Key   string
	Value string
}

// Instance is the part of an EC2 instance description the relay reports on.
type Instance struct {
	ID       string
	PublicIP string
	Tags     []Tag
}

func newInstance(in types.Instance) Instance {
	instance := Instance{
		ID:       aws.ToString(in.InstanceId),
		PublicIP: aws.ToString(in.PublicIpAddress),
	}
	for _, tag := range in.Tags {
		instance.Tags = append(instance.Tags, Tag{
			Key:   aws.ToString(tag.Key),
			Value: aws.ToString(tag.Value),
		})
	}
	return instance
}

// Tag returns the value of the first tag with the given key.
func (i Instance) Tag(key string) (string, bool) {
	for _, tag := range i.Tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// DisplayName is the instance's Name tag, or NoNamePlaceholder.
func (i Instance) DisplayName() string {
	if name, ok := i.Tag(NameTagKey); ok {
		return name
	}
	return NoNamePlaceholder
}

// PublicAddress is the instance's public IPv4 address, or
// NoPublicIPPlaceholder.
func (i Instance) PublicAddress() string {
	if i.PublicIP == "" {
		return NoPublicIPPlaceholder
	}
	return i.PublicIP
}
