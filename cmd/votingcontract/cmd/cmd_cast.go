package cmd

import (
	"fmt"
	"net/http"

	"github.com/tokenized/voting-contract/cmd/votingcontract/client"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	FlagDebugMode = "debug"
)

var cmdCast = &cobra.Command{
	Use:     "cast <voter_id> <color>",
	Short:   "Cast a vote and print the tally.",
	Long:    "Cast a vote for Red, Green or Blue through the contract host at CLIENT_URL and print the resulting tally and winner.",
	Example: "votingcontract cast alice Red",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Missing voter id or color")
		}

		debugMode, _ := c.Flags().GetBool(FlagDebugMode)

		cfg, err := client.NewConfig()
		if err != nil {
			return errors.Wrap(err, "config")
		}

		cl := client.New(*cfg)
		ctx := cl.Context()

		reply, err := cl.Cast(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		if debugMode {
			spew.Dump(reply)
		}

		if reply.Status != http.StatusOK {
			return errors.New(reply.Response.Msg)
		}

		fmt.Println(reply.Response.Msg)
		return nil
	},
}

func init() {
	cmdCast.Flags().Bool(FlagDebugMode, false, "Dump the host reply")
}
