// cmd/golox: the CLI/REPL driver. Reads a file or REPL line, invokes the
// pipeline via the lox package, and maps its error flags to process exit
// codes. No args starts the REPL, one positional arg runs that file, and
// -p parses a file and prints its AST instead of running it.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/gxsoar/golox"
)

const historyFile = ".golox_history"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, optind, err := getopt.Getopts(args, "hvp")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 64
	}
	printAST := false
	for _, o := range opts {
		switch o.Option {
		case 'h':
			usage()
			return 0
		case 'v':
			fmt.Printf("golox %s (built %s)\n", lox.Version, lox.BuildDate)
			return 0
		case 'p':
			printAST = true
		}
	}
	rest := args[optind:]

	switch {
	case printAST && len(rest) == 1:
		return runPrintAST(rest[0])
	case len(rest) == 0:
		return runPrompt()
	case len(rest) == 1:
		return runFile(rest[0])
	default:
		usage()
		return 0
	}
}

func usage() {
	fmt.Println("Usage: golox [-h] [-v] [-p] [script]")
	fmt.Println("  -p  parse script and print its AST instead of running it")
}

// runPrintAST parses a script and prints its AST without evaluating it.
func runPrintAST(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: cannot read %s: %v\n", filepath.Clean(path), err)
		return 66
	}
	stmts, errs := lox.ParseOnly(string(src))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 65
	}
	fmt.Println(lox.PrintProgram(stmts))
	return 0
}

// runFile reads the whole file and runs it once. Exit codes: 0 success, 65
// static error, 70 uncaught runtime error.
func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: cannot read %s: %v\n", filepath.Clean(path), err)
		return 66
	}

	session := lox.NewLox()
	session.Run(string(src))

	switch {
	case session.HadError():
		return 65
	case session.HadRuntimeError():
		return 70
	default:
		return 0
	}
}

// runPrompt is the REPL: prompt "> ", read a line, run it, loop until EOF.
// The REPL never exits with an error — it recovers and keeps reading.
func runPrompt() int {
	session := lox.NewLox()

	histPath := historyPath()
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt("> ")
		if err != nil { // io.EOF or aborted prompt
			fmt.Println()
			return 0
		}
		if line == "" {
			continue
		}
		session.Run(line)
		if session.HadRuntimeError() {
			fmt.Fprintln(os.Stderr, color.RedString("(runtime error; session continues)"))
		}
		ln.AppendHistory(line)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
