// wizard-bench is a benchmark and stress test for the WizardString library.
// It generates a large synthetic source, edits it throughout and measures
// rendering and source map generation.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/phroun/wizardstring"
)

// editWidth is the number of original bytes each edit covers.
const editWidth = 5

type BenchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
	Extra    string
}

func (r BenchResult) String() string {
	if r.Ops > 0 {
		opsPerSec := float64(r.Ops) / r.Duration.Seconds()
		if r.Extra != "" {
			return fmt.Sprintf("%-40s %12v  (%s ops, %.2f ops/sec) %s", r.Name, r.Duration.Round(time.Microsecond), humanize.Comma(int64(r.Ops)), opsPerSec, r.Extra)
		}
		return fmt.Sprintf("%-40s %12v  (%s ops, %.2f ops/sec)", r.Name, r.Duration.Round(time.Microsecond), humanize.Comma(int64(r.Ops)), opsPerSec)
	}
	if r.Extra != "" {
		return fmt.Sprintf("%-40s %12v  %s", r.Name, r.Duration.Round(time.Microsecond), r.Extra)
	}
	return fmt.Sprintf("%-40s %12v", r.Name, r.Duration.Round(time.Microsecond))
}

type benchConfig struct {
	lines int
	edits int
	seed  uint64
}

func main() {
	var cfg benchConfig

	cmd := &cobra.Command{
		Use:          "wizard-bench",
		Short:        "Benchmark WizardString edits and source map generation",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.lines < 1 || cfg.edits < 1 {
				return fmt.Errorf("--lines and --edits must be positive")
			}
			run(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	cmd.Flags().IntVarP(&cfg.lines, "lines", "l", 100_000, "Lines in the generated source")
	cmd.Flags().IntVarP(&cfg.edits, "edits", "e", 10_000, "Edits per benchmark")
	cmd.Flags().Uint64Var(&cfg.seed, "seed", 1, "Random seed for edit offsets")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(w io.Writer, cfg benchConfig) {
	fmt.Fprintln(w, "WizardString Benchmark and Stress Test")
	fmt.Fprintln(w, "======================================")
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintln(w)

	var results []BenchResult

	fmt.Fprintf(w, "Generating %s lines...\n", humanize.Comma(int64(cfg.lines)))
	start := time.Now()
	source := generateSource(cfg.lines)
	result := BenchResult{
		Name:     "Generate source",
		Duration: time.Since(start),
		Extra:    humanize.Bytes(uint64(len(source))),
	}
	results = append(results, result)
	fmt.Fprintln(w, result)
	fmt.Fprintln(w)

	runBench := func(name string, fn func() BenchResult) {
		fmt.Fprintf(w, "  %-40s ", name+"...")
		result := fn()
		fmt.Fprintf(w, "%v\n", result.Duration.Round(time.Microsecond))
		results = append(results, result)
	}

	offsets := editOffsets(len(source), cfg.edits, cfg.seed)

	fmt.Fprintln(w, "Edit operations:")
	runBench("Overwrite", func() BenchResult { return benchOverwrite(source, offsets) })
	runBench("Queue text (appendLeft/prependRight)", func() BenchResult { return benchQueue(source, offsets) })
	runBench("Remove", func() BenchResult { return benchRemove(source, offsets) })
	runBench("Move to end", func() BenchResult { return benchMove(source, offsets) })
	runBench("Replace all digits", func() BenchResult { return benchReplaceAll(source) })
	runBench("Indent", func() BenchResult { return benchIndent(source) })

	edited, err := editedString(source, offsets)
	if err != nil {
		fmt.Fprintf(w, "Failed to prepare edited string: %v\n", err)
		return
	}

	fmt.Fprintln(w, "\nOutput:")
	runBench("Render", func() BenchResult { return benchRender(edited) })
	runBench("Clone", func() BenchResult { return benchClone(edited) })
	runBench("Source map (low)", func() BenchResult { return benchMap(edited, wizardstring.LowRes, "Source map (low)") })
	runBench("Source map (high)", func() BenchResult { return benchMap(edited, wizardstring.HighRes, "Source map (high)") })
	runBench("Source map (boundary)", func() BenchResult { return benchMap(edited, wizardstring.BoundaryRes, "Source map (boundary)") })

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, r := range results {
		fmt.Fprintln(w, r)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Peak heap allocation: %s\n", humanize.Bytes(m.HeapSys))
	fmt.Fprintf(w, "Total allocations: %s\n", humanize.Bytes(m.TotalAlloc))
}

// generateSource builds a JavaScript-like text of n lines.
func generateSource(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "%sconst value%d = compute(%d, \"%c\");\n",
			strings.Repeat("  ", i%4), i, i*7, 'a'+rune(i%26))
	}
	return sb.String()
}

// editOffsets returns up to n distinct offsets, sorted, each starting a
// range of editWidth bytes that overlaps no other.
func editOffsets(size, n int, seed uint64) []int {
	slots := size / (editWidth * 2)
	if n > slots {
		n = slots
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	picked := make(map[int]bool, n)
	for len(picked) < n {
		picked[rng.IntN(slots)] = true
	}
	offsets := make([]int, 0, n)
	for slot := range slots {
		if picked[slot] {
			offsets = append(offsets, slot*editWidth*2)
		}
	}
	return offsets
}

func failed(name string, start time.Time, err error) BenchResult {
	return BenchResult{Name: name, Duration: time.Since(start), Extra: fmt.Sprintf("ERROR: %v", err)}
}

func benchOverwrite(source string, offsets []int) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	for _, off := range offsets {
		if err := ws.Overwrite(off, off+editWidth, "xyz", wizardstring.OverwriteOptions{StoreName: true}); err != nil {
			return failed("Overwrite", start, err)
		}
	}
	return BenchResult{Name: "Overwrite", Duration: time.Since(start), Ops: len(offsets)}
}

func benchQueue(source string, offsets []int) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	for _, off := range offsets {
		if err := ws.AppendLeft(off, "/*L*/"); err != nil {
			return failed("Queue text", start, err)
		}
		if err := ws.PrependRight(off, "/*R*/"); err != nil {
			return failed("Queue text", start, err)
		}
	}
	return BenchResult{Name: "Queue text", Duration: time.Since(start), Ops: 2 * len(offsets)}
}

func benchRemove(source string, offsets []int) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	for _, off := range offsets {
		if err := ws.Remove(off, off+editWidth); err != nil {
			return failed("Remove", start, err)
		}
	}
	return BenchResult{
		Name:     "Remove",
		Duration: time.Since(start),
		Ops:      len(offsets),
		Extra:    fmt.Sprintf("%s left", humanize.Bytes(uint64(ws.Len()))),
	}
}

func benchMove(source string, offsets []int) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	for _, off := range offsets {
		if off+editWidth >= len(source) {
			continue
		}
		if err := ws.Move(off, off+editWidth, len(source)); err != nil {
			return failed("Move to end", start, err)
		}
	}
	return BenchResult{Name: "Move to end", Duration: time.Since(start), Ops: len(offsets)}
}

func benchReplaceAll(source string) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	n, err := ws.ReplaceAll(wizardstring.GlobalRegexp(regexp.MustCompile(`\d+`)), "<$0>")
	if err != nil {
		return failed("Replace all digits", start, err)
	}
	return BenchResult{Name: "Replace all digits", Duration: time.Since(start), Ops: n}
}

func benchIndent(source string) BenchResult {
	ws := wizardstring.New(source, wizardstring.Options{})
	start := time.Now()
	ws.AutoIndent(wizardstring.IndentOptions{})
	return BenchResult{
		Name:     "Indent",
		Duration: time.Since(start),
		Extra:    fmt.Sprintf("%s -> %s", humanize.Bytes(uint64(len(source))), humanize.Bytes(uint64(ws.Len()))),
	}
}

// editedString mixes every kind of edit so the output benchmarks walk a
// fragmented chunk list.
func editedString(source string, offsets []int) (*wizardstring.WizardString, error) {
	ws := wizardstring.New(source, wizardstring.Options{Filename: "bench.js"})
	for i, off := range offsets {
		var err error
		switch i % 4 {
		case 0:
			err = ws.Overwrite(off, off+editWidth, "xyz", wizardstring.OverwriteOptions{StoreName: true})
		case 1:
			err = ws.AppendLeft(off, "/*a*/\n")
		case 2:
			err = ws.Remove(off, off+editWidth)
		case 3:
			if off > 0 && off+editWidth < len(source) {
				err = ws.Move(off, off+editWidth, 0)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func benchRender(ws *wizardstring.WizardString) BenchResult {
	const rounds = 10
	start := time.Now()
	size := 0
	for range rounds {
		size = len(ws.String())
	}
	return BenchResult{Name: "Render", Duration: time.Since(start), Ops: rounds, Extra: humanize.Bytes(uint64(size))}
}

func benchClone(ws *wizardstring.WizardString) BenchResult {
	const rounds = 10
	start := time.Now()
	for range rounds {
		ws.Clone()
	}
	return BenchResult{Name: "Clone", Duration: time.Since(start), Ops: rounds}
}

func benchMap(ws *wizardstring.WizardString, hires wizardstring.Resolution, name string) BenchResult {
	start := time.Now()
	m := ws.GenerateMap(wizardstring.MapOptions{
		File:           "bench.out.js",
		Source:         "bench.js",
		IncludeContent: true,
		Hires:          hires,
	})
	encoded := m.String()
	return BenchResult{
		Name:     name,
		Duration: time.Since(start),
		Extra:    fmt.Sprintf("%s, %s lines", humanize.Bytes(uint64(len(encoded))), humanize.Comma(int64(len(m.Mappings)))),
	}
}
