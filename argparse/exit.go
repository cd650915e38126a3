package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// osExit is swapped out by tests that exercise the exit layer.
var osExit = os.Exit

// exitConfig is the opt-in parse-failure behavior: render the error and the
// help text, then exit the process. The core parser never prints and never
// exits; this layer does both on the caller's behalf.
type exitConfig struct {
	code        int    // exit code when no per-category mapping matches
	header      string // user help text; replaces the generated usage when set
	codesByType map[ErrorType]int
}

// ExitOnFailure makes ParseArgs terminal: any failure is reported on stderr
// followed by the help text, and the process exits with code. An optional
// header replaces the generated usage text wholesale. Help interception is
// enabled as a side effect; a help request prints to stdout and exits 0.
func (p *Parser) ExitOnFailure(code int, header ...string) *Parser {
	if len(header) > 1 {
		failConfig("at most one help header is allowed")
	}
	p.exit = &exitConfig{code: code, codesByType: make(map[ErrorType]int)}
	if len(header) == 1 {
		p.exit.header = header[0]
	}
	p.helpEnabled = true
	return p
}

// ExitCodeFor overrides the exit code used for one error category. Only
// meaningful after ExitOnFailure.
func (p *Parser) ExitCodeFor(typ ErrorType, code int) *Parser {
	if p.exit == nil {
		failConfig("ExitCodeFor requires ExitOnFailure")
	}
	p.exit.codesByType[typ] = code
	return p
}

func (c *exitConfig) handle(p *Parser, err error) {
	if err == nil { return }

	if errors.Is(err, ErrHelpRequested) {
		c.writeHelp(p, os.Stdout)
		osExit(0)
		return // reachable only with a swapped exit func
	}

	p.WriteError(os.Stderr, err)
	fmt.Fprintln(os.Stderr)
	c.writeHelp(p, os.Stderr)
	osExit(c.resolve(err))
}

func (c *exitConfig) writeHelp(p *Parser, w io.Writer) {
	if c.header != "" {
		fmt.Fprintln(w, c.header)
		return
	}
	p.Usage(w)
}

// resolve converts an error to an exit code. Precedence: per-category
// mapping (ExitCodeFor), then the ExitOnFailure code.
func (c *exitConfig) resolve(err error) int {
	var perr *ParseError
	if errors.As(err, &perr) {
		if code, ok := c.codesByType[perr.Type]; ok { return code }
	}
	return c.code
}
