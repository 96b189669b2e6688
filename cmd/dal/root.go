package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dal",
		Short:         "daltools asset pipeline: DMD models, DALBUNDLE archives, keys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newKeygenCmd(),
		newKeyCmd(),
		newCompileCmd(),
		newBundleCmd(),
		newBundleViewCmd(),
		newExtractCmd(),
	)
	return root
}
