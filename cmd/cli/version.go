package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bacalhau-project/alarm-relay/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Alarm Relay Version: %s\n", version.Get())
			return err
		},
	}
}
