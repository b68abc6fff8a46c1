// Command golox is the CLI driver for the lox package: file execution,
// a REPL, and an AST pretty-printer. None of this is part of the
// interpreter core - it only consumes the interfaces pkg/lox exposes.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccuetoh/golox/pkg/lox"
)

// Exit codes, borrowed from Crafting Interpreters' jlox.
const (
	exitOK           = 0
	exitUsage        = 1
	exitStaticError  = 65
	exitRuntimeError = 70
)

var (
	prettyPrint bool
	verbose     bool
	log         zerolog.Logger
)

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerminal(os.Stderr)}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)

	root := &cobra.Command{
		Use:           "golox [file]",
		Short:         "A tree-walking interpreter for Lox",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	root.Flags().BoolVarP(&prettyPrint, "pretty-print", "p", false, "scan and parse only, print the AST, then exit")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd())

	cobra.OnInitialize(func() {
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		}
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("golox: %v", err))
		os.Exit(exitUsage)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runREPL()
	}
	return runFile(args[0])
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file...>",
		Short: "Run one or more source files against a shared global scope",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(args)
		},
	}
}

func runFile(path string) error {
	log.Debug().Str("file", path).Msg("reading source file")

	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if prettyPrint {
		return prettyPrintSource(string(source), path)
	}

	session := lox.NewSession(os.Stdout)
	session.Run(string(source), path)
	log.Debug().Int("diagnostics", len(session.Reporter.Errors())).Msg("run complete")
	return exitForSession(session)
}

func runFiles(paths []string) error {
	log.Debug().Strs("files", paths).Msg("running files against a shared global scope")

	session := lox.NewSession(os.Stdout)
	if err := session.RunFiles(paths); err != nil {
		return errors.Wrap(err, "running files")
	}
	return exitForSession(session)
}

// exitForSession reports accumulated diagnostics and terminates the
// process with the matching exit code: 65 for any static error, 70 for a
// runtime error, 0 otherwise.
func exitForSession(session *lox.Session) error {
	printDiagnostics(session.Reporter)

	switch {
	case session.Reporter.HadStaticError():
		os.Exit(exitStaticError)
	case session.Reporter.HadRuntimeError():
		os.Exit(exitRuntimeError)
	}
	return nil
}

// printDiagnostics renders every recorded diagnostic, colorized by kind:
// yellow for static (lex/parse/resolve) errors, red for runtime errors.
func printDiagnostics(reporter *lox.Reporter) {
	for _, err := range reporter.Errors() {
		switch err.(type) {
		case *lox.RuntimeError:
			fmt.Fprintln(os.Stderr, color.RedString("%s", err.Error()))
		default:
			fmt.Fprintln(os.Stderr, color.YellowString("%s", err.Error()))
		}
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
