package lox

import (
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Session ties one Interpreter (and its globals/resolution table) to a
// shared Reporter across any number of Run calls - the shape a REPL needs,
// since a function defined on one line must still be callable on the next.
type Session struct {
	Interp   *Interpreter
	Reporter *Reporter
}

// NewSession creates a session whose program output goes to stdout.
func NewSession(stdout io.Writer) *Session {
	reporter := NewReporter()
	return &Session{
		Interp:   NewInterpreter(reporter, stdout),
		Reporter: reporter,
	}
}

// Run scans, parses, resolves and - absent any static error - interprets
// one source buffer. filename is handed to the Scanner; diagnostics do not
// include it. Per-call
// diagnostic state is cleared first, so a REPL can call Run repeatedly
// without one bad line poisoning the next.
func (s *Session) Run(source, filename string) {
	s.Reporter.Reset()

	stmts := s.parse(source, filename, s.Reporter)
	if s.Reporter.HadStaticError() {
		return
	}

	NewResolver(s.Interp, s.Reporter).Resolve(stmts)
	if s.Reporter.HadStaticError() {
		return
	}

	s.Interp.Interpret(stmts)
}

func (s *Session) parse(source, filename string, reporter *Reporter) []Stmt {
	scanner := NewScanner(source, filename, reporter)
	parser := NewParser(scanner, reporter)
	return parser.Parse()
}

// RunFiles concatenates and runs multiple files against one shared global
// scope, in argument order. Each file is scanned and parsed on its own
// goroutine (golang.org/x/sync/errgroup) since that stage touches no
// shared state; resolution and interpretation then run sequentially on the
// combined statement list, preserving single-threaded evaluation.
func (s *Session) RunFiles(filenames []string) error {
	s.Reporter.Reset()

	perFile := make([][]Stmt, len(filenames))
	perFileReporter := make([]*Reporter, len(filenames))

	var g errgroup.Group
	for i, name := range filenames {
		i, name := i, name
		g.Go(func() error {
			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}

			fileReporter := NewReporter()
			perFileReporter[i] = fileReporter
			perFile[i] = s.parse(string(src), name, fileReporter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var stmts []Stmt
	for i := range filenames {
		stmts = append(stmts, perFile[i]...)
		s.Reporter.merge(perFileReporter[i])
	}

	if s.Reporter.HadStaticError() {
		return nil
	}

	NewResolver(s.Interp, s.Reporter).Resolve(stmts)
	if s.Reporter.HadStaticError() {
		return nil
	}

	s.Interp.Interpret(stmts)
	return nil
}
