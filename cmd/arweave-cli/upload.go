package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arweave-go/core"
	"arweave-go/pkg/walletfile"
)

// osFileSource adapts an *os.File to core.PayloadSource.
type osFileSource struct {
	f    *os.File
	size int64
}

func (s *osFileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *osFileSource) Size() int64                             { return s.size }

func uploadCmd() *cobra.Command {
	var keyPath, baseURL, target, quantity string
	var timeout time.Duration
	var tags []string

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Build, sign, and upload a format-2 data transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := walletfile.Load(keyPath)
			if err != nil {
				return err
			}
			wallet := core.NewWallet(key)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}
			source := &osFileSource{f: f, size: info.Size()}

			adapter := core.NewHTTPAdapter(baseURL, timeout)

			anchor, err := core.FetchAnchor(adapter)
			if err != nil {
				return fmt.Errorf("fetch anchor: %w", err)
			}

			tx, err := core.NewTransaction(wallet, core.Options{
				FileSource: source,
				Target:     target,
				Quantity:   quantity,
			}, anchor)
			if err != nil {
				return err
			}

			for _, t := range tags {
				name, value, ok := strings.Cut(t, "=")
				if !ok {
					return fmt.Errorf("invalid --tag %q, expected name=value", t)
				}
				if err := tx.AddTag(name, value); err != nil {
					return err
				}
			}

			if err := tx.Sign(core.NewPriceFetcher(adapter)); err != nil {
				return fmt.Errorf("sign: %w", err)
			}

			uploader, err := core.NewUploader(tx, source, adapter)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := uploader.UploadAll(ctx); err != nil {
				return fmt.Errorf("upload: %w", err)
			}

			logrus.WithField("tx_id", tx.ID).Info("upload complete")
			fmt.Println(tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyPath, "key", "", "path to the RSA JWK wallet file")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://arweave.net", "gateway base URL")
	cmd.Flags().StringVar(&target, "target", "", "recipient address for a value transfer")
	cmd.Flags().StringVar(&quantity, "quantity", "", "AR amount to send alongside the data")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "name=value tag, may be repeated")
	cmd.MarkFlagRequired("key")
	return cmd
}
