package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/bundle"
)

// selectNonCollidingDir picks a directory under loc named base, or
// base_000, base_001, ... if base already exists.
func selectNonCollidingDir(loc, base string) (string, error) {
	candidate := filepath.Join(loc, base)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	for i := 0; i < 1000; i++ {
		candidate = filepath.Join(loc, fmt.Sprintf("%s_%03d", base, i))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("extract: failed to find a non-colliding folder name for %q", base)
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <paths...>",
		Short: "Extract every item of each DALBUNDLE archive into a sibling directory",
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

				dir, base := filepath.Split(path)
				stem := strings.TrimSuffix(base, filepath.Ext(base))
				outDir, err := selectNonCollidingDir(dir, stem)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}

				count := 0
				for _, name := range repo.Names() {
					content, err := repo.Lookup(name)
					if err != nil {
						return err
					}
					if err := os.WriteFile(filepath.Join(outDir, name), content, 0o644); err != nil {
						return err
					}
					count++
				}

				log.Infow("extracted", "archive", path, "dir", outDir, "items", count)
			}
			return nil
		},
	}
}
