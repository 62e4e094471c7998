package cmd

import (
	"fmt"

	"github.com/tokenized/voting-contract/cmd/votingcontract/client"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdJSON = &cobra.Command{
	Use:     "json <voter_id> <color>",
	Short:   "Generate the JSON request for a vote.",
	Long:    "Generate the {\"method\", \"payload\"} JSON request that casts a vote through the /api/voting-contract endpoint.",
	Example: "votingcontract json alice Red",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Missing voter id or color")
		}

		b, err := client.Envelope(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", b)
		return nil
	},
}
