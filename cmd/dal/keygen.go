package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/keys"
)

func newKeygenCmd() *cobra.Command {
	var prefix, owner, email, description string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a data keypair and write it to <prefix>-data_{sec,pub}.dky",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				return fmt.Errorf("keygen: -o <prefix> is required")
			}

			pub, sec, err := keys.GenDataKeypair()
			if err != nil {
				return err
			}

			md := keys.Metadata{
				Owner:       owner,
				Email:       email,
				Description: description,
				CreatedTime: time.Now().UTC().Format(time.RFC3339),
			}

			pubText, err := keys.SerializePublicKey(pub, md)
			if err != nil {
				return err
			}
			secText, err := keys.SerializeSecretKey(sec, md)
			if err != nil {
				return err
			}

			secPath := prefix + "-data_sec.dky"
			pubPath := prefix + "-data_pub.dky"
			if err := os.WriteFile(secPath, []byte(secText), 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(pubPath, []byte(pubText), 0o644); err != nil {
				return err
			}

			log.Infow("wrote keypair", "secret", secPath, "public", pubPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "output", "o", "", "output path prefix")
	cmd.Flags().StringVar(&owner, "owner", "", "key owner")
	cmd.Flags().StringVar(&email, "email", "", "key owner email")
	cmd.Flags().StringVar(&description, "description", "", "key description")
	return cmd
}
