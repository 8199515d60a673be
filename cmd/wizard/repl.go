package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phroun/wizardstring"
	"github.com/phroun/wizardstring/internal/config"
	"github.com/phroun/wizardstring/internal/log"
)

func replCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Edit a text interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			r := newREPL(cmd.InOrStdin(), cmd.OutOrStdout(), log.NewLogger(cmd.ErrOrStderr(), cfg).Slog(), cfg)
			if len(args) == 1 {
				r.cmdOpen(args)
			}
			r.run(true)
			return nil
		},
	}
}

// unescape turns \n, \t and \\ typed at the prompt into the characters.
var unescape = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\t`, "\t")

// REPL holds the state of the interactive session. Every edit pushes a clone
// of the previous state so it can be undone.
type REPL struct {
	ws      *wizardstring.WizardString
	history []*wizardstring.WizardString
	in      *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
	cfg     config.EnvConfig
}

func newREPL(in io.Reader, out io.Writer, logger *slog.Logger, cfg config.EnvConfig) *REPL {
	return &REPL{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		cfg:    cfg,
	}
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *REPL) run(banner bool) {
	if banner {
		r.printf("WizardString REPL\n")
		r.printf("Type 'help' for available commands, 'quit' to exit\n\n")
	}

	for {
		r.printf("wizard> ")
		input, err := r.in.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.handleCommand(input) {
			return
		}
		if err != nil {
			r.printf("\nGoodbye!\n")
			return
		}
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()
	case "quit", "exit":
		r.printf("Goodbye!\n")
		return false
	case "new":
		r.cmdNew(args)
	case "open":
		r.cmdOpen(args)
	case "close":
		r.cmdClose()
	case "status":
		r.cmdStatus()
	case "show":
		r.cmdShow()
	case "slice":
		r.cmdSlice(args)
	case "lastline":
		r.cmdLastLine()
	case "overwrite", "update", "name":
		r.cmdOverwrite(cmd, args)
	case "remove", "reset":
		r.cmdRange(cmd, args)
	case "move":
		r.cmdMove(args)
	case "appendleft", "appendright", "prependleft", "prependright":
		r.cmdQueue(cmd, args)
	case "append", "prepend":
		r.cmdEnds(cmd, args)
	case "indent":
		r.cmdIndent(args)
	case "trim", "trimstart", "trimend", "trimlines":
		r.cmdTrim(cmd)
	case "replace", "replaceall":
		r.cmdReplace(cmd, args)
	case "map":
		r.cmdMap(args)
	case "lookup":
		r.cmdLookup(args)
	case "undo":
		r.cmdUndo()
	default:
		r.printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	r.printf(`
Available Commands:
-------------------

SESSION:
  new <text>                        Start editing the given text
  open <filepath>                   Start editing a file
  close                             Drop the current text
  status                            Show lengths and whether anything changed
  undo                              Revert the last edit

READ:
  show                              Print the edited text
  slice <start> [<end>]             Print the edited text between original offsets
  lastline                          Print the last line of the edited text

EDIT (offsets refer to the original text):
  overwrite <start> <end> <text>    Replace a range, dropping queued text
  update <start> <end> <text>       Replace a range, keeping queued text
  name <start> <end> <text>         Overwrite and keep the original as a map name
  remove <start> <end>              Remove a range
  reset <start> <end>               Restore a range to the original
  move <start> <end> <to>           Move a range before offset <to>
  appendleft <offset> <text>        Queue text after the character before <offset>
  appendright <offset> <text>       Queue text before the character at <offset>
  prependleft <offset> <text>
  prependright <offset> <text>
  append <text>                     Add text at the end
  prepend <text>                    Add text at the start
  indent [<text>]                   Indent every line (guessed indent by default)
  trim | trimstart | trimend        Trim whitespace
  trimlines                         Trim leading and trailing line breaks
  replace <literal> <text>          Replace the first occurrence
  replaceall <literal> <text>       Replace every occurrence

SOURCE MAP:
  map [low|high|boundary]           Print the source map JSON
  lookup <line> <column>            Find the original position of a generated one

Text arguments may use \n and \t.

OTHER:
  help                              Show this help message
  quit, exit                        Exit the REPL

`)
}

func (r *REPL) ensureOpen() bool {
	if r.ws == nil {
		r.printf("Nothing is open. Use 'new <text>' or 'open <file>'.\n")
		return false
	}
	return true
}

// edit snapshots the current state, runs fn and keeps the snapshot for undo
// only if fn succeeded.
func (r *REPL) edit(fn func() error) {
	if !r.ensureOpen() {
		return
	}
	snapshot := r.ws.Clone()
	if err := fn(); err != nil {
		r.ws = snapshot
		r.printf("Error: %v\n", err)
		return
	}
	r.history = append(r.history, snapshot)
	r.printf("%s\n", strconv.Quote(r.ws.String()))
}

func (r *REPL) offsets(args []string, n int, usage string) ([]int, bool) {
	if len(args) < n {
		r.printf("Usage: %s\n", usage)
		return nil, false
	}
	out := make([]int, n)
	for i := range n {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			r.printf("Invalid offset %q\n", args[i])
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func text(args []string) string {
	return unescape.Replace(strings.Join(args, " "))
}

func (r *REPL) load(source, filename string) {
	r.ws = wizardstring.New(source, wizardstring.Options{Filename: filename, Logger: r.logger})
	r.history = nil
}

func (r *REPL) cmdNew(args []string) {
	r.load(text(args), "")
	r.printf("Created new text with %d bytes\n", len(r.ws.Original()))
}

func (r *REPL) cmdOpen(args []string) {
	if len(args) != 1 {
		r.printf("Usage: open <filepath>\n")
		return
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.load(string(data), args[0])
	r.printf("Opened %s (%d bytes)\n", args[0], len(data))
}

func (r *REPL) cmdClose() {
	if !r.ensureOpen() {
		return
	}
	r.ws = nil
	r.history = nil
	r.printf("Closed\n")
}

func (r *REPL) cmdStatus() {
	if !r.ensureOpen() {
		return
	}
	r.printf("Status:\n")
	if name := r.ws.Filename(); name != "" {
		r.printf("  File:     %s\n", name)
	}
	r.printf("  Original: %d bytes\n", len(r.ws.Original()))
	r.printf("  Edited:   %d bytes\n", r.ws.Len())
	r.printf("  Changed:  %v\n", r.ws.HasChanged())
	r.printf("  Names:    %v\n", r.ws.StoredNames())
	r.printf("  Undo:     %d steps\n", len(r.history))
}

func (r *REPL) cmdShow() {
	if !r.ensureOpen() {
		return
	}
	r.printf("%s\n", r.ws.String())
}

func (r *REPL) cmdSlice(args []string) {
	if !r.ensureOpen() {
		return
	}
	if len(args) == 1 {
		args = append(args, strconv.Itoa(len(r.ws.Original())))
	}
	o, ok := r.offsets(args, 2, "slice <start> [<end>]")
	if !ok {
		return
	}
	s, err := r.ws.Slice(o[0], o[1])
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("%s\n", strconv.Quote(s))
}

func (r *REPL) cmdLastLine() {
	if !r.ensureOpen() {
		return
	}
	r.printf("%s\n", strconv.Quote(r.ws.LastLine()))
}

func (r *REPL) cmdOverwrite(cmd string, args []string) {
	o, ok := r.offsets(args, 2, cmd+" <start> <end> <text>")
	if !ok {
		return
	}
	t := text(args[2:])
	r.edit(func() error {
		switch cmd {
		case "update":
			return r.ws.Update(o[0], o[1], t, wizardstring.UpdateOptions{})
		case "name":
			return r.ws.Overwrite(o[0], o[1], t, wizardstring.OverwriteOptions{StoreName: true})
		default:
			return r.ws.Overwrite(o[0], o[1], t, wizardstring.OverwriteOptions{})
		}
	})
}

func (r *REPL) cmdRange(cmd string, args []string) {
	o, ok := r.offsets(args, 2, cmd+" <start> <end>")
	if !ok {
		return
	}
	r.edit(func() error {
		if cmd == "reset" {
			return r.ws.Reset(o[0], o[1])
		}
		return r.ws.Remove(o[0], o[1])
	})
}

func (r *REPL) cmdMove(args []string) {
	o, ok := r.offsets(args, 3, "move <start> <end> <to>")
	if !ok {
		return
	}
	r.edit(func() error {
		return r.ws.Move(o[0], o[1], o[2])
	})
}

func (r *REPL) cmdQueue(cmd string, args []string) {
	o, ok := r.offsets(args, 1, cmd+" <offset> <text>")
	if !ok {
		return
	}
	t := text(args[1:])
	r.edit(func() error {
		switch cmd {
		case "appendleft":
			return r.ws.AppendLeft(o[0], t)
		case "appendright":
			return r.ws.AppendRight(o[0], t)
		case "prependleft":
			return r.ws.PrependLeft(o[0], t)
		default:
			return r.ws.PrependRight(o[0], t)
		}
	})
}

func (r *REPL) cmdEnds(cmd string, args []string) {
	t := text(args)
	r.edit(func() error {
		if cmd == "append" {
			r.ws.Append(t)
		} else {
			r.ws.Prepend(t)
		}
		return nil
	})
}

func (r *REPL) cmdIndent(args []string) {
	r.edit(func() error {
		if len(args) == 0 {
			r.ws.AutoIndent(wizardstring.IndentOptions{})
		} else {
			r.ws.Indent(text(args), wizardstring.IndentOptions{})
		}
		return nil
	})
}

func (r *REPL) cmdTrim(cmd string) {
	r.edit(func() error {
		switch cmd {
		case "trimstart":
			r.ws.TrimStart()
		case "trimend":
			r.ws.TrimEnd()
		case "trimlines":
			r.ws.TrimLines()
		default:
			r.ws.Trim()
		}
		return nil
	})
}

func (r *REPL) cmdReplace(cmd string, args []string) {
	if len(args) < 1 {
		r.printf("Usage: %s <literal> <text>\n", cmd)
		return
	}
	p := wizardstring.Literal(unescape.Replace(args[0]))
	t := text(args[1:])
	r.edit(func() error {
		var n int
		var err error
		if cmd == "replaceall" {
			n, err = r.ws.ReplaceAll(p, t)
		} else {
			n, err = r.ws.Replace(p, t)
		}
		if err == nil {
			r.printf("Replaced %d\n", n)
		}
		return err
	})
}

func (r *REPL) generateMap(hires wizardstring.Resolution) *wizardstring.SourceMap {
	name := r.ws.Filename()
	return r.ws.GenerateMap(wizardstring.MapOptions{
		File:           name,
		Source:         name,
		IncludeContent: r.cfg.IncludeContent,
		Hires:          hires,
	})
}

func (r *REPL) cmdMap(args []string) {
	if !r.ensureOpen() {
		return
	}
	hires := r.cfg.Resolution()
	if len(args) > 0 {
		var err error
		if hires, err = config.ParseResolution(args[0]); err != nil {
			r.printf("Error: %v\n", err)
			return
		}
	}
	r.printf("%s\n", r.generateMap(hires).String())
}

func (r *REPL) cmdLookup(args []string) {
	if !r.ensureOpen() {
		return
	}
	o, ok := r.offsets(args, 2, "lookup <line> <column>")
	if !ok {
		return
	}
	pos, found := r.generateMap(wizardstring.HighRes).OriginalPositionFor(o[0], o[1])
	if !found {
		r.printf("No mapping for %d:%d\n", o[0], o[1])
		return
	}
	r.printf("%d:%d", pos.Line, pos.Column)
	if pos.Name != "" {
		r.printf(" (%s)", pos.Name)
	}
	r.printf("\n")
}

func (r *REPL) cmdUndo() {
	if len(r.history) == 0 {
		r.printf("Nothing to undo\n")
		return
	}
	r.ws = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.printf("%s\n", strconv.Quote(r.ws.String()))
}
