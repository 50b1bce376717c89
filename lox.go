// lox.go: the driver that wires lexer → parser → resolver → interpreter and
// owns two independent error-gate flags, one for static (lex/parse/resolve)
// errors and one for runtime errors, so a REPL line that fails at runtime
// doesn't also get flagged as a syntax error.
package lox

import (
	"os"

	"github.com/fatih/color"
	"github.com/tevino/abool/v2"
)

var errColor = color.New(color.FgRed)

// Lox is a ready-to-use interpreter session: one persistent global
// environment across calls to Run, plus the error-reporting gates the CLI
// driver (cmd/golox) inspects to choose an exit code.
type Lox struct {
	interp *Interpreter

	hadError        *abool.AtomicBool
	hadRuntimeError *abool.AtomicBool
}

// NewLox constructs a session with a fresh global environment and the
// native functions registered (native.go).
func NewLox() *Lox {
	return &Lox{
		interp:          NewInterpreter(),
		hadError:        abool.NewBool(false),
		hadRuntimeError: abool.NewBool(false),
	}
}

// HadError reports whether any call to Run has hit a lex, parse or resolve
// error. The file runner reads it to choose its exit code; the REPL driver
// does not consult it and always keeps going.
func (l *Lox) HadError() bool { return l.hadError.IsSet() }

// HadRuntimeError reports whether the most recent call to Run raised an
// uncaught runtime error.
func (l *Lox) HadRuntimeError() bool { return l.hadRuntimeError.IsSet() }

// Run lexes, parses, resolves, and interprets source against the session's
// persistent global environment. Diagnostics are written to stderr as they
// are found; Run does not return an error value — callers that need to know
// whether something went wrong consult HadError/HadRuntimeError afterward.
func (l *Lox) Run(source string) {
	l.hadRuntimeError.UnSet()

	lexer := NewLexer(source)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			errColor.Fprintln(os.Stderr, e)
		}
		l.hadError.Set()
		return
	}

	stmts, parseErrs := Parse(tokens)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			errColor.Fprintln(os.Stderr, e)
		}
		l.hadError.Set()
		return
	}

	resolution, resolveErrs := Resolve(stmts)
	if len(resolveErrs) > 0 {
		for _, e := range resolveErrs {
			errColor.Fprintln(os.Stderr, e)
		}
		l.hadError.Set()
		return
	}

	if err := l.interp.Interpret(stmts, resolution); err != nil {
		errColor.Fprintln(os.Stderr, err)
		l.hadRuntimeError.Set()
	}
}

// ParseOnly lexes and parses source without resolving or running it,
// returning the statements and any errors. Used by the `-p` debug flag.
func ParseOnly(source string) ([]Stmt, []error) {
	lexer := NewLexer(source)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, lexErrs
	}
	return Parse(tokens)
}
