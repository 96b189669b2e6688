package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/bundle"
)

// expandInputs turns a mix of file and directory arguments into a
// sorted, de-duplicated list of regular files, recursing into any
// directory — the glob-expansion step the reference builder performs
// via a shell-level glob is done here explicitly since directories are
// also accepted (§6 supplement).
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	var walk func(path string) error
	walk = func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := walk(filepath.Join(path, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	for _, a := range args {
		if err := walk(a); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func newBundleCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "bundle <inputs...>",
		Short: "Pack files (and directories, recursively) into a DALBUNDLE archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("bundle: -o <path> is required")
			}

			files, err := expandInputs(args)
			if err != nil {
				return err
			}

			items := make([]bundle.Item, 0, len(files))
			for _, f := range files {
				data, err := os.ReadFile(f)
				if err != nil {
					return err
				}
				items = append(items, bundle.Item{Name: filepath.Base(f), Data: data})
				log.Infow("added", "name", filepath.Base(f), "size", len(data))
			}

			out, err := bundle.Build(items)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return err
			}
			log.Infow("wrote bundle", "path", outPath, "items", len(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output archive path")
	return cmd
}
