package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var vcCmd = &cobra.Command{
	Use:   "votingcontract",
	Short: "Voting Contract CLI",
}

func Execute() {
	vcCmd.AddCommand(cmdCast)
	vcCmd.AddCommand(cmdJSON)
	vcCmd.AddCommand(cmdWatch)
	if err := vcCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
