package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/phroun/wizardstring"
	"github.com/phroun/wizardstring/internal/config"
	"github.com/phroun/wizardstring/internal/log"
	"github.com/phroun/wizardstring/internal/output"
	"github.com/phroun/wizardstring/internal/script"
)

func applyCmd(envFile *string) *cobra.Command {
	var (
		out   string
		flags mapFlags
	)

	cmd := &cobra.Command{
		Use:   "apply <source> <script>",
		Short: "Apply an edit script to one file",
		Long: `Apply a YAML edit script to a source file.

With --out the edited text is written to that path and its map to
<path>.map (or inline with --inline-map). Without --out the edited text is
printed to standard output.
` + configHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return runApply(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args[0], args[1], out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default: standard output)")
	flags.register(cmd)

	return cmd
}

func runApply(stdout, stderr io.Writer, cfg config.EnvConfig, sourcePath, scriptPath, outPath string) error {
	logger := log.NewLogger(stderr, cfg).With("source", sourcePath)

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	sc, err := script.ParseFile(scriptPath)
	if err != nil {
		return err
	}
	if sc.Filename == "" {
		sc.Filename = filepath.Base(sourcePath)
	}

	ws, err := sc.Build(string(src), logger.Slog())
	if err != nil {
		return err
	}
	logger.Debug("applied script", "script", scriptPath, "edits", len(sc.Edits))

	if outPath == "" {
		text := ws.String()
		if cfg.InlineMap {
			m := ws.GenerateMap(wizardstring.MapOptions{
				Source:         sourcePath,
				IncludeContent: cfg.IncludeContent,
				Hires:          cfg.Resolution(),
			})
			text += "\n//# sourceMappingURL=" + m.URL()
		}
		_, err := io.WriteString(stdout, text)
		return err
	}

	res, err := output.Write(ws, sourcePath, filepath.Base(outPath), output.Options{
		Dir:            filepath.Dir(outPath),
		InlineMap:      cfg.InlineMap,
		IncludeContent: cfg.IncludeContent,
		Resolution:     cfg.Resolution(),
	})
	if err != nil {
		return err
	}
	logger.Info("wrote output",
		"path", res.CodePath,
		"map", res.MapPath,
		"size", humanize.Bytes(uint64(res.Size)))
	return nil
}
