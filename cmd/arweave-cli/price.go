package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"arweave-go/core"
)

func priceCmd() *cobra.Command {
	var baseURL, target string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "price [bytes]",
		Short: "Quote the reward (in AR) for uploading a payload of the given size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[0], err)
			}
			adapter := core.NewHTTPAdapter(baseURL, timeout)
			winston, err := core.NewPriceFetcher(adapter).Price(size, target)
			if err != nil {
				return err
			}
			fmt.Printf("%s AR (%s winston)\n", core.WinstonToAR(winston), winston)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "https://arweave.net", "gateway base URL")
	cmd.Flags().StringVar(&target, "target", "", "optional recipient address")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	return cmd
}
