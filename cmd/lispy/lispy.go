package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cellux/lispy"
	"github.com/peterh/liner"
)

const (
	historyFile = ".lispy_history"
	promptCont  = "... "
)

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func defaultHistoryPath() string {
	if path := os.Getenv("LISPY_HISTORY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func main() {
	interactive := flag.Bool("i", false, "enter the prompt loop after loading files")
	expr := flag.String("e", "", "evaluate `expr` and print its value")
	prompt := flag.String("prompt", lispy.DefaultPrompt, "prompt shown before each expression")
	history := flag.String("history", defaultHistoryPath(), "history file for the interactive prompt")
	maxDepth := flag.Int("max-depth", lispy.DefaultMaxDepth, "maximum nesting of procedure calls")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	interp, err := lispy.New(lispy.WithPrompt(*prompt), lispy.WithMaxDepth(*maxDepth))
	if err != nil {
		die("Error creating interpreter: %v\n", err)
	}
	for _, arg := range flag.Args() {
		if err := interp.LoadFile(arg); err != nil {
			die("Error while loading %s\n", lispy.Report(err))
		}
	}
	if *expr != "" {
		result, err := interp.EvalString(*expr)
		if err != nil {
			die("%s\n", lispy.Report(err))
		}
		if !lispy.IsUnspecified(result) {
			fmt.Println(lispy.Repr(result))
		}
	}
	if (flag.NArg() > 0 || *expr != "") && !*interactive {
		return
	}
	if _, err := liner.TerminalMode(); err == nil {
		os.Exit(repl(interp, *prompt, *history))
	}
	if err := interp.REPL(os.Stdin, os.Stdout, os.Stderr); err != nil {
		die("Error while reading from stdin: %v\n", err)
	}
}

// repl runs the interactive prompt on a terminal: line editing, history,
// and continuation lines until the input holds complete expressions.
func repl(interp *lispy.Interpreter, prompt, historyPath string) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, forms, err := readForms(ln, interp.Symbols, prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if strings.TrimSpace(src) != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, lispy.Report(err))
			continue
		}
		for _, form := range forms {
			result, err := interp.Eval(form, interp.Global)
			if err != nil {
				fmt.Fprintln(os.Stderr, lispy.Report(err))
				break
			}
			if !lispy.IsUnspecified(result) {
				fmt.Println(lispy.Repr(result))
			}
		}
	}
}

// readForms prompts until the accumulated lines parse without running out
// of input, then returns the source and its expressions.
func readForms(ln *liner.State, symbols *lispy.Interner, prompt string) (string, []lispy.Value, error) {
	var sb strings.Builder
	for {
		p := prompt
		if sb.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return sb.String(), nil, err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		src := sb.String()
		forms, err := lispy.ReadAll(symbols, src)
		if lispy.IsIncomplete(err) {
			continue
		}
		return src, forms, err
	}
}
