package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/bundle"
)

func newBundleViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle-view <paths...>",
		Short: "Print a DALBUNDLE archive's header and item listing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				repo, err := bundle.Open(data)
				if err != nil {
					return err
				}

				fmt.Printf("%s:\n", path)
				fmt.Printf("  created: %s\n", repo.CreatedAt())
				fmt.Printf("  items:   %d\n", repo.Count())
				for _, name := range repo.Names() {
					fmt.Printf("    %s\n", name)
				}
			}
			return nil
		},
	}
}
