package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/keys"
)

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <files...>",
		Short: "Print metadata and key type for each .dky file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				dk, err := keys.DeserializeKey(string(data))
				if err != nil {
					return err
				}

				kind := "public"
				if dk.Type == keys.KeyTypeDataSecret {
					kind = "secret"
				}

				fmt.Printf("%s:\n", path)
				fmt.Printf("  type:        %s\n", kind)
				fmt.Printf("  owner:       %s\n", dk.Metadata.Owner)
				fmt.Printf("  email:       %s\n", dk.Metadata.Email)
				fmt.Printf("  description: %s\n", dk.Metadata.Description)
				fmt.Printf("  created:     %s\n", dk.Metadata.CreatedTime)
			}
			return nil
		},
	}
}
