package main

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arweave-go/internal/gateway"
)

// devnetCmd starts the in-memory mock gateway, mirroring the teacher's
// `synnergy testnet start` idiom (cmd/synnergy/main.go) for exercising the
// full client pipeline without a live network.
func devnetCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "devnet",
		Short: "Run an in-memory mock gateway for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := gateway.NewService()
			logrus.WithField("addr", addr).Info("devnet: listening")
			fmt.Printf("devnet gateway listening on %s\n", addr)
			return http.ListenAndServe(addr, gateway.Router(svc))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":1984", "listen address")
	return cmd
}
