package cli

import (
	"bufio"
	"fmt"
	"github.com/funvibe/funlet/internal/config"
	"github.com/funvibe/funlet/internal/vm"
	"github.com/mattn/go-isatty"
	"io"
	"os"
	"strings"
)

const (
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// repl is one interactive session: a persistent VM, the line source
// and the command history store.
type repl struct {
	machine *vm.VM
	cfg     *config.Config
	hist    *History
	out     io.Writer
	errOut  io.Writer
	colors  bool
}

// RunRepl drives an interactive session reading lines from in until
// EOF or :quit. Globals accumulate across lines on one VM instance;
// failed lines leave the session usable.
func RunRepl(in io.Reader, out, errOut io.Writer, cfg *config.Config) int {
	r := &repl{
		machine: vm.New(),
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		colors:  colorsEnabled(cfg),
	}
	r.machine.SetOutput(out)
	r.machine.SetErrorOutput(errOut)
	if cfg.Trace {
		r.machine.SetTrace(errOut)
	}

	if path := cfg.HistoryPath(); path != "" {
		hist, err := OpenHistory(path)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: history disabled: %s\n", err)
		} else {
			r.hist = hist
			defer hist.Close()
		}
	}

	fmt.Fprintf(out, "funlet %s (type :help for commands)\n", Version)

	prompt := cfg.Prompt
	if r.colors {
		prompt = ansiCyan + prompt + ansiReset
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if r.metaCommand(line) {
				break
			}
			continue
		}

		if r.hist != nil {
			if err := r.hist.Append(line); err != nil {
				fmt.Fprintf(errOut, "Warning: recording history: %s\n", err)
			}
		}

		// Diagnostics already went to errOut; the session continues.
		_ = r.machine.Interpret(line)
	}
	return ExitOK
}

// metaCommand handles a :-prefixed line and reports whether the
// session should end.
func (r *repl) metaCommand(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.out, "Commands: :help  :history  :quit")
	case ":history":
		r.showHistory()
	default:
		fmt.Fprintf(r.out, "Unknown command %s (type :help)\n", line)
	}
	return false
}

func (r *repl) showHistory() {
	if r.hist == nil {
		fmt.Fprintln(r.out, "History is disabled.")
		return
	}

	entries, err := r.hist.Recent(historyListLimit)
	if err != nil {
		fmt.Fprintf(r.errOut, "Warning: reading history: %s\n", err)
		return
	}
	for i, entry := range entries {
		fmt.Fprintf(r.out, "%4d  %s\n", i+1, entry.Line)
	}
}

// colorsEnabled applies the NO_COLOR convention (https://no-color.org/)
// on top of the config switch and terminal detection.
func colorsEnabled(cfg *config.Config) bool {
	if cfg.NoColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
