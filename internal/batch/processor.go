// Package batch drives the `compile` command's worker pool: each
// worker claims one input path and runs a complete, independent
// scene→optimize→convert→encode pipeline for it (§5 restricts the
// scene/model/DMD passes themselves to single-threaded execution, but
// explicitly allows sharding "by DMD file" above that layer).
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/scene"
	"github.com/sausagetaste/daltools-go/internal/scenepass"
)

// Config holds the settings shared across every worker in a Run.
type Config struct {
	AssetDir    string
	Compression dmd.Method
	Workers     int
}

// Result holds the outcome of compiling one input file.
type Result struct {
	InputPath  string
	OutputPath string
	Success    bool
	Error      string
}

// Run compiles every input path using a fixed-size worker pool,
// printing a periodic rate report the way the teacher's batch runner
// does, and returns one Result per input in input order.
func Run(cfg Config, inputs []string) []Result {
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	work := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = compileOne(cfg, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range inputs {
		work <- i
	}
	close(work)
	wg.Wait()
	close(done)

	return results
}

func compileOne(cfg Config, inputPath string) Result {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".dmd"
	res := Result{InputPath: inputPath, OutputPath: outputPath}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	s, err := scene.LoadJSON(data)
	if err != nil {
		res.Error = fmt.Sprintf("parse scene: %v", err)
		return res
	}

	scenepass.FlipUVVertically(s)
	scenepass.ClearCollectionInfo(s)

	if err := scenepass.Optimize(s, cfg.AssetDir); err != nil {
		res.Error = fmt.Sprintf("optimize: %v", err)
		return res
	}

	mdl, err := scenepass.ToModel(s)
	if err != nil {
		res.Error = fmt.Sprintf("convert: %v", err)
		return res
	}

	encoded, err := dmd.Encode(mdl, cfg.Compression)
	if err != nil {
		res.Error = fmt.Sprintf("encode: %v", err)
		return res
	}

	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		res.Error = fmt.Sprintf("write %s: %v", outputPath, err)
		return res
	}

	res.Success = true
	return res
}
