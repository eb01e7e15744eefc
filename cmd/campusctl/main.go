// Package main is campusctl, the admin CLI for the campus API. It drives the
// HTTP interface with trusted identity headers, so it must be pointed at an
// instance reachable only by operators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var client apiClient

	root := &cobra.Command{
		Use:           "campusctl",
		Short:         "Admin CLI for the campus API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&client.baseURL, "addr", "http://localhost:8080", "base URL of the campus API")
	root.PersistentFlags().StringVar(&client.actorID, "actor-id", "campusctl", "actor id sent with every request")
	root.PersistentFlags().StringVar(&client.actorRole, "actor-role", "moderator", "actor role sent with every request")

	root.AddCommand(
		newSeedCmd(&client),
		newUserCmd(&client),
	)
	return root
}
