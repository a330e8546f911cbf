// Command arweave-cli is the command-line front end for the transaction
// construction and chunked upload engine. Root-command wiring follows the
// teacher's cmd/synnergy/main.go; the .env/log-level bootstrap follows
// cmd/cli/wallet.go's once.Do middleware idiom.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arweave-go/core"
)

var logger = logrus.StandardLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:               "arweave-cli",
		Short:             "Construct, sign, and upload format-2 Arweave-style transactions",
		PersistentPreRunE: bootstrap,
	}

	rootCmd.AddCommand(
		walletCmd(),
		uploadCmd(),
		priceCmd(),
		statusCmd(),
		devnetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// bootstrap loads a local .env and applies LOG_LEVEL before any subcommand
// runs, mirroring the teacher's initWalletMiddleware.
func bootstrap(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		lvl = "info"
	}
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)
	core.SetLogger(logger)
	return nil
}
