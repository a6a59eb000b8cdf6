package main

import (
	"github.com/bacalhau-project/alarm-relay/cmd/cli"
	_ "github.com/bacalhau-project/alarm-relay/pkg/logger"
)

func main() {
	cli.Execute()
}
