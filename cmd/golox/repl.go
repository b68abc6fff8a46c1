package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ccuetoh/golox/pkg/lox"
)

const replFilename = "<stdin>"

var prompt = color.New(color.FgCyan, color.Bold).Sprint(">>> ")

// runREPL reads one line at a time from stdin, running each against a
// Session shared for the life of the process so declarations made on one
// line are visible on the next. "exit" and "quit" terminate it, as does
// EOF (Ctrl-D).
func runREPL() error {
	log.Debug().Msg("starting REPL")
	session := lox.NewSession(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(os.Stdout, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			return nil
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if prettyPrint {
			if err := prettyPrintSource(line, replFilename); err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("%v", err))
			}
			continue
		}

		session.Run(line, replFilename)
		printDiagnostics(session.Reporter)
	}
}
