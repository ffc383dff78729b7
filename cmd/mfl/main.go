package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	mfl "github.com/mfl-lang/mfl"
)

const (
	appName     = "mfl"
	historyFile = ".mfl_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("MFL %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mfl.Version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "ast":
		os.Exit(cmdAst(os.Args[2:]))
	case "version":
		fmt.Println(mfl.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`MFL %s (built %s)

Usage:
  %s run <file.mfl>     Parse and evaluate a program.
  %s repl               Start the interactive REPL.
  %s ast <file.mfl>     Print the syntax tree of a program.
  %s version            Print the compiled version.

`, mfl.Version, mfl.BuildDate, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.mfl>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	prog, perr := mfl.NewParser(string(src)).Parse()
	if perr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(mfl.WrapErrorWithName(perr, file, string(src)).Error()))
		return 1
	}

	ev := mfl.NewEvaluator(os.Stdout)
	if rerr := ev.Run(prog); rerr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(mfl.WrapErrorWithName(rerr, file, string(src)).Error()))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// ast
// -----------------------------------------------------------------------------

func cmdAst(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s ast <file.mfl>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	prog, perr := mfl.NewParser(string(src)).Parse()
	if perr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(mfl.WrapErrorWithName(perr, file, string(src)).Error()))
		return 1
	}

	fmt.Print(mfl.FormatTree(prog))
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// resultWriter colors evaluator output for the interactive session.
type resultWriter struct {
	c *color.Color
}

func (w resultWriter) Write(p []byte) (int, error) {
	if _, err := w.c.Print(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	// One evaluator for the whole session: bindings persist across inputs.
	ev := mfl.NewEvaluator(resultWriter{c: color.New(color.FgBlue)})

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		prog, perr := mfl.NewParser(code).Parse()
		if perr != nil {
			fmt.Fprintln(os.Stderr, color.RedString(mfl.WrapErrorWithName(perr, "<repl>", code).Error()))
			continue
		}
		if rerr := ev.Run(prog); rerr != nil {
			fmt.Fprintln(os.Stderr, color.RedString(mfl.WrapErrorWithName(rerr, "<repl>", code).Error()))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe reads lines until the buffered input parses, fails with
// a real syntax error, or is aborted. A parse that fails only because the
// input ended keeps the read going with the continuation prompt.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Includes liner.ErrPromptAborted (Ctrl+C): drop the buffer.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true // REPL commands bypass the probe
		}
		if _, perr := mfl.NewParser(src).Parse(); perr == nil || !mfl.IsIncomplete(perr) {
			return src, true
		}
	}
}
