package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/phroun/wizardstring"
	"github.com/phroun/wizardstring/internal/config"
	"github.com/phroun/wizardstring/internal/log"
	"github.com/phroun/wizardstring/internal/output"
	"github.com/phroun/wizardstring/internal/script"
)

// scriptSuffix names the per-file script used when --script is not given.
const scriptSuffix = ".wizard.yaml"

func batchCmd(envFile *string) *cobra.Command {
	var (
		scriptPath string
		outDir     string
		workers    int
		hashNames  bool
		flags      mapFlags
	)

	cmd := &cobra.Command{
		Use:   "batch <source>...",
		Short: "Apply edit scripts to many files concurrently",
		Long: `Apply edit scripts to many files concurrently.

Every source uses the script given with --script, or else the file next to
it named <source>` + scriptSuffix + `. Outputs keep the source base name and
go to the output directory, each with its map.
` + configHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("hash-names") {
				cfg.HashNames = hashNames
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.NewLogger(cmd.ErrOrStderr(), cfg)
			results, err := runBatch(cmd.Context(), logger, cfg, scriptPath, args)
			printSummary(cmd.OutOrStdout(), results)
			return err
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Script applied to every source")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "Output directory (default: dist)")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Files processed at once (default: 4)")
	cmd.Flags().BoolVar(&hashNames, "hash-names", false, "Insert a content hash into output names")
	flags.register(cmd)

	return cmd
}

// batchResult is the outcome for one source. Results keep argument order.
type batchResult struct {
	source string
	output.Result
	err error
}

// runBatch processes every source with at most cfg.Workers at a time. Each
// source gets its own WizardString. A failing file does not stop the others;
// all failures are joined into the returned error.
func runBatch(ctx context.Context, logger *log.Logger, cfg config.EnvConfig, scriptPath string, sources []string) ([]batchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var shared *script.Script
	if scriptPath != "" {
		sc, err := script.ParseFile(scriptPath)
		if err != nil {
			return nil, err
		}
		shared = sc
	}

	results := make([]batchResult, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, source := range sources {
		results[i].source = source
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			fileCtx := log.WithFile(ctx, source)
			logger.DebugContext(fileCtx, "processing", "shared_script", shared != nil)

			res, err := processFile(logger.WithContext(fileCtx), cfg, shared, source)
			if err != nil {
				logger.ErrorContext(fileCtx, "failed", "error", err)
				results[i].err = err
				return nil
			}
			logger.InfoContext(fileCtx, "wrote output", "path", res.CodePath, "size", humanize.Bytes(uint64(res.Size)))
			results[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.source, r.err))
		}
	}
	return results, errors.Join(errs...)
}

func processFile(logger *log.Logger, cfg config.EnvConfig, shared *script.Script, source string) (output.Result, error) {
	sc := shared
	if sc == nil {
		var err error
		sc, err = script.ParseFile(source + scriptSuffix)
		if err != nil {
			return output.Result{}, err
		}
	}

	src, err := os.ReadFile(source)
	if err != nil {
		return output.Result{}, err
	}

	opts := sc.Options(logger.Slog())
	if opts.Filename == "" {
		opts.Filename = filepath.Base(source)
	}
	ws := wizardstring.New(string(src), opts)
	if err := sc.Apply(ws); err != nil {
		return output.Result{}, err
	}

	return output.Write(ws, source, filepath.Base(source), output.Options{
		Dir:            cfg.OutDir,
		InlineMap:      cfg.InlineMap,
		HashNames:      cfg.HashNames,
		IncludeContent: cfg.IncludeContent,
		Resolution:     cfg.Resolution(),
	})
}

func printSummary(w io.Writer, results []batchResult) {
	var total uint64
	written := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "FAIL %s\n", r.source)
			continue
		}
		if r.CodePath == "" {
			continue
		}
		written++
		total += uint64(r.Size)
		fmt.Fprintf(w, "ok   %s -> %s (%s)\n", r.source, r.CodePath, humanize.Bytes(uint64(r.Size)))
	}
	fmt.Fprintf(w, "%d of %d files written, %s total\n", written, len(results), humanize.Bytes(total))
}
