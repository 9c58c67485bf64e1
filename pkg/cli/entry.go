// Package cli implements the funlet command line: running script
// files, piped input, and the interactive REPL.
package cli

import (
	"errors"
	"fmt"
	"github.com/funvibe/funlet/internal/config"
	"github.com/funvibe/funlet/internal/vm"
	"github.com/mattn/go-isatty"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Version is the release version reported by --version.
// Can be set at build time using: -ldflags "-X github.com/funvibe/funlet/pkg/cli.Version=v1.2.3"
var Version = "0.1.0"

// Exit codes follow the BSD sysexits convention where one applies.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitCompile = 65
	ExitNoInput = 66
	ExitRuntime = 70
)

// options collects the host flags; everything else on the command
// line is treated as a script path.
type options struct {
	help    bool
	version bool
	disasm  bool
	trace   bool
	noColor bool
}

// Run executes the funlet command line and returns the process exit
// code. args excludes the program name.
func Run(args []string) int {
	opts, paths, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		printUsage(os.Stderr)
		return ExitUsage
	}

	if opts.help {
		printUsage(os.Stdout)
		return ExitOK
	}
	if opts.version {
		fmt.Printf("funlet %s\n", Version)
		return ExitOK
	}

	if len(paths) > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected at most one script")
		printUsage(os.Stderr)
		return ExitUsage
	}

	cfg, err := resolveConfig(opts, paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return ExitUsage
	}

	if len(paths) == 1 {
		return runFile(paths[0], cfg, os.Stdout, os.Stderr)
	}

	// No script argument: piped input runs as one whole program, a
	// terminal starts the REPL.
	if !stdinIsTerminal() {
		return runStdin(cfg, os.Stdout, os.Stderr)
	}
	return RunRepl(os.Stdin, os.Stdout, os.Stderr, cfg)
}

func parseArgs(args []string) (options, []string, error) {
	var opts options
	var paths []string

	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			opts.help = true
		case "-v", "--version":
			opts.version = true
		case "-d", "--disasm":
			opts.disasm = true
		case "-t", "--trace":
			opts.trace = true
		case "--no-color":
			opts.noColor = true
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, nil, fmt.Errorf("unknown flag %q", arg)
			}
			paths = append(paths, arg)
		}
	}
	return opts, paths, nil
}

// resolveConfig loads funlet.yaml relative to the script (or the
// working directory) and applies the command line overrides on top.
func resolveConfig(opts options, paths []string) (*config.Config, error) {
	dir := "."
	if len(paths) == 1 {
		dir = filepath.Dir(paths[0])
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if opts.disasm {
		cfg.Disasm = true
	}
	if opts.trace {
		cfg.Trace = true
	}
	if opts.noColor {
		cfg.NoColor = true
	}
	return cfg, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: funlet [flags] [script%s]

Runs a script file, piped input, or an interactive session when no
script is given and stdin is a terminal.

Flags:
  -h, --help      show this help
  -v, --version   print the version
  -d, --disasm    print the compiled bytecode before running
  -t, --trace     trace every executed instruction on stderr
      --no-color  disable ANSI colors
`, config.SourceFileExt)
}

func runFile(path string, cfg *config.Config, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open file %q: %s\n", path, err)
		return ExitNoInput
	}
	return execute(string(source), scriptName(path), cfg, stdout, stderr)
}

func runStdin(cfg *config.Config, stdout, stderr io.Writer) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading stdin: %s\n", err)
		return ExitNoInput
	}
	return execute(string(source), "stdin", cfg, stdout, stderr)
}

// execute compiles and runs one whole program, mapping the outcome to
// an exit code. Diagnostics are written by the VM itself.
func execute(source, name string, cfg *config.Config, stdout, stderr io.Writer) int {
	machine := vm.New()
	machine.SetOutput(stdout)
	machine.SetErrorOutput(stderr)
	if cfg.Trace {
		machine.SetTrace(stderr)
	}

	var err error
	if cfg.Disasm {
		var chunk *vm.Chunk
		chunk, err = vm.Compile(source, stderr)
		if err == nil {
			fmt.Fprint(stdout, vm.Disassemble(chunk, name))
			err = machine.RunChunk(chunk)
		}
	} else {
		err = machine.Interpret(source)
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, vm.ErrCompile):
		return ExitCompile
	case errors.Is(err, vm.ErrRuntime):
		return ExitRuntime
	default:
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitRuntime
	}
}

// scriptName derives the disassembly header from the script path.
func scriptName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
