package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"arweave-go/core"
)

func statusCmd() *cobra.Command {
	var baseURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status [tx-id]",
		Short: "Fetch a transaction's confirmation status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := core.NewHTTPAdapter(baseURL, timeout)
			status, body, err := core.FetchStatus(adapter, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("HTTP %d: %s\n", status, string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "https://arweave.net", "gateway base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	return cmd
}
