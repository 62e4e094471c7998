package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokenized/voting-contract/cmd/votingcontract/client"
	"github.com/tokenized/voting-contract/internal/broadcaster"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdWatch = &cobra.Command{
	Use:   "watch",
	Short: "Stream the live tally.",
	Long:  "Print the current tally and then every vote cast until interrupted.",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := client.NewConfig()
		if err != nil {
			return errors.Wrap(err, "config")
		}

		cl := client.New(*cfg)
		ctx, cancel := context.WithCancel(cl.Context())
		defer cancel()

		osSignals := make(chan os.Signal, 1)
		signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case <-osSignals:
				cancel()
			case <-ctx.Done():
			}
		}()

		return cl.Watch(ctx, func(u broadcaster.Update) error {
			if len(u.Color) == 0 {
				fmt.Printf("Tally: %s. Winner: %s (%d votes)\n", u.Tally, u.Winner, u.Votes)
				return nil
			}

			fmt.Printf("'%s' voted %s. Tally: %s. Winner: %s\n", u.VoterID, u.Color, u.Tally,
				u.Winner)
			return nil
		})
	},
}
