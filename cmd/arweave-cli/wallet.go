package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arweave-go/core"
	"arweave-go/pkg/walletfile"
)

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "wallet", Short: "Wallet key operations"}
	cmd.AddCommand(walletAddressCmd())
	return cmd
}

func walletAddressCmd() *cobra.Command {
	var keyPath string
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address derived from an RSA JWK key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := walletfile.Load(keyPath)
			if err != nil {
				return err
			}
			w := core.NewWallet(key)
			fmt.Println(w.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "path to the RSA JWK wallet file")
	cmd.MarkFlagRequired("key")
	return cmd
}
