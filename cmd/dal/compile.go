package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sausagetaste/daltools-go/internal/batch"
	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/keys"
)

func parseCompression(s string) (dmd.Method, error) {
	switch s {
	case "0", "none":
		return dmd.MethodNone, nil
	case "1", "zip":
		return dmd.MethodDeflate, nil
	case "2", "brotli":
		return dmd.MethodBrotli, nil
	default:
		return 0, fmt.Errorf("compile: unrecognized compression %q", s)
	}
}

func newCompileCmd() *cobra.Command {
	var compression, assetDir, signKeyFile string
	var workers int

	cmd := &cobra.Command{
		Use:   "compile <files...>",
		Short: "Compile each scene JSON input into a .dmd file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := parseCompression(compression)
			if err != nil {
				return err
			}

			if assetDir == "" {
				assetDir = filepath.Dir(args[0])
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			var signSec *keys.SecretKey
			if signKeyFile != "" {
				data, err := os.ReadFile(signKeyFile)
				if err != nil {
					return err
				}
				dk, err := keys.DeserializeKey(string(data))
				if err != nil {
					return err
				}
				if dk.Secret == nil {
					return fmt.Errorf("compile: %s is not a secret key file", signKeyFile)
				}
				signSec = dk.Secret
			}

			cfg := batch.Config{AssetDir: assetDir, Compression: method, Workers: workers}
			results := batch.Run(cfg, args)

			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
					log.Errorw("compile failed", "input", r.InputPath, "error", r.Error)
					continue
				}
				log.Infow("compiled", "input", r.InputPath, "output", r.OutputPath)

				if signSec != nil {
					if err := signOutput(*signSec, r.OutputPath); err != nil {
						return fmt.Errorf("compile: sign %s: %w", r.OutputPath, err)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("compile: %d/%d inputs failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&compression, "compression", "c", "2", "compression method: 0|none, 1|zip, 2|brotli")
	cmd.Flags().StringVar(&assetDir, "data", "", "asset directory for texture lookups (default: first input's directory)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (default: NumCPU)")
	cmd.Flags().StringVar(&signKeyFile, "sign", "", "secret .dky key file; sign each compiled .dmd to <stem>.dmd.sig")
	return cmd
}

func signOutput(sec keys.SecretKey, dmdPath string) error {
	encoded, err := os.ReadFile(dmdPath)
	if err != nil {
		return err
	}
	sig := dmd.SignPayload(sec, encoded)
	return os.WriteFile(dmdPath+".sig", sig, 0o644)
}
