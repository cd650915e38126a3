// Package argparse declares and parses command-line arguments: long options
// (--name, --name=value), short option groups (-xyz, -j5), positional
// arguments, free and tail arguments, with typed accessors, per-argument
// constraints and a process-wide global argument registry that every parser
// merges by default.
package argparse

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/dzonerzy/go-argparse/internal/fuzzy"
)

const (
	// helpName is reserved in every registry so help interception can never
	// collide with a declared argument.
	helpName  = "help"
	helpShort = 'h'

	suggestMaxDistance = 2
	suggestMaxCount    = 3
)

// Parser scans one argument vector against its declared arguments. All
// declarations happen before ParseArgs; accessors are read after. A Parser
// parses exactly once.
type Parser struct {
	named       *Registry
	positionals *Registry
	globals     *Registry

	mergeGlobals bool
	freeEnabled  bool
	parsed       bool

	freeArgs []string
	tailArgs []string

	// Write-back closures scheduled by Bind, run after the post-parse
	// check succeeds.
	binders []func() error

	// Presentation layer, all opt-in.
	name        string
	about       string
	helpEnabled bool
	exit        *exitConfig
}

// NewParser creates a Parser that resolves names against the process-wide
// global Registry in addition to its own declarations.
func NewParser() *Parser {
	return NewParserWithGlobals(Global())
}

// NewParserWithGlobals creates a Parser resolving against the given
// Registry instead of the process-wide one. Tests use it to isolate global
// state.
func NewParserWithGlobals(globals *Registry) *Parser {
	return &Parser{
		named:        NewRegistry(),
		positionals:  NewRegistry(),
		globals:      globals,
		mergeGlobals: true,
	}
}

// Declaration surface. AddArg, AddMultiArg and AddPositionalArg are free
// functions because methods cannot introduce type parameters.

// AddFlag declares a flag on the parser.
func (p *Parser) AddFlag(name, help string) *FlagArg {
	p.checkEntry(name)
	h := &flagHolder{holderBase: holderBase{fullName: name, help: help}}
	p.named.register(h)
	return &FlagArg{h: h, reg: p.named, p: p}
}

// AddArg declares a single-value argument of type T on the parser.
func AddArg[T any](p *Parser, name, help string) *Arg[T] {
	p.checkEntry(name)
	h := newArgHolder[T](name, help)
	p.named.register(h)
	return &Arg[T]{h: h, reg: p.named, p: p}
}

// AddMultiArg declares a multi-value argument with element type T on the
// parser.
func AddMultiArg[T any](p *Parser, name, help string) *MultiArg[T] {
	p.checkEntry(name)
	h := newMultiHolder[T](name, help)
	p.named.register(h)
	return &MultiArg[T]{h: h, reg: p.named, p: p}
}

// AddPositionalArg declares the next positional argument. Positionals match
// non-option tokens strictly in declaration order.
func AddPositionalArg[T any](p *Parser, help string) *Arg[T] {
	name := positionalName(p.positionals.size())
	p.positionals.checkEntry(name)
	h := newArgHolder[T](name, help)
	p.positionals.register(h)
	return &Arg[T]{h: h, reg: p.positionals, p: p, positional: true}
}

// checkEntry runs the registration checks against every namespace the
// parser resolves names in.
func (p *Parser) checkEntry(name string) {
	if p.mergeGlobals {
		p.globals.checkEntry(name)
	}
	p.named.checkEntry(name)
}

// Parser configuration

// EnableFreeArgs turns on collection of tokens that match neither an option
// nor a positional slot. Without it such tokens fail the parse.
func (p *Parser) EnableFreeArgs() *Parser {
	p.freeEnabled = true
	return p
}

// IgnoreGlobalArgs opts the parser out of the process-wide Registry; only
// its own declarations resolve.
func (p *Parser) IgnoreGlobalArgs() *Parser {
	p.mergeGlobals = false
	return p
}

// EnableHelp reserves --help and -h: when the vector asks for either,
// ParseArgs returns ErrHelpRequested instead of an unknown-option error.
// A declared short name 'h' keeps its own meaning.
func (p *Parser) EnableHelp() *Parser {
	p.helpEnabled = true
	return p
}

// SetName records the program name and a one-line description for usage
// output.
func (p *Parser) SetName(name, about string) *Parser {
	p.name = name
	p.about = about
	return p
}

// Parsing

// ParseArgs scans the argument vector. Element 0 is the program name and is
// always skipped. At most one tail mark may be given; every token after the
// mark lands verbatim in TailArgs. The first violation stops the scan and
// is returned.
func (p *Parser) ParseArgs(args []string, tailMark ...string) error {
	if len(tailMark) > 1 {
		failConfig("at most one tail mark is allowed")
	}
	if p.parsed {
		failConfig("parser has already parsed an argument vector")
	}
	p.parsed = true

	err := p.scan(args, tailMark)
	if p.exit != nil {
		p.exit.handle(p, err)
	}
	return err
}

// Parse is the convenience form over os.Args.
func (p *Parser) Parse(tailMark ...string) error {
	return p.ParseArgs(os.Args, tailMark...)
}

// FreeArgs returns the collected free arguments, token order. Empty unless
// EnableFreeArgs was called.
func (p *Parser) FreeArgs() []string {
	return p.freeArgs
}

// TailArgs returns every token that followed the tail mark, verbatim.
func (p *Parser) TailArgs() []string {
	return p.tailArgs
}

// scan is the single left-to-right pass: one or two tokens per iteration,
// no lookahead beyond the value of the current option, no backtracking.
func (p *Parser) scan(args []string, tailMark []string) error {
	if err := p.applyEnvFallback(); err != nil {
		return err
	}

	mark, hasMark := "", false
	if len(tailMark) == 1 {
		mark, hasMark = tailMark[0], true
	}

	positionalCount := 0
	for i, step := 1, 0; i < len(args); i += step {
		token := args[i]

		if hasMark && token == mark {
			p.tailArgs = append(p.tailArgs, args[i+1:]...)
			break
		}

		if len(token) > 2 && strings.HasPrefix(token, "--") {
			n, err := p.parseLongArg(args, i)
			if err != nil {
				return err
			}
			step = n
			continue
		}

		if len(token) > 1 && token[0] == '-' {
			n, err := p.parseShortArgs(args, i)
			if err != nil {
				return err
			}
			step = n
			continue
		}

		if positionalCount < p.positionals.size() {
			h := p.positionals.ordered[positionalCount]
			positionalCount++
			if err := h.processValue(escapeValue(token)); err != nil {
				return err
			}
			step = 1
			continue
		}

		if !p.freeEnabled {
			return parseErrorf(ErrorTypeSemantic, "free arguments are not enabled")
		}
		p.freeArgs = append(p.freeArgs, escapeValue(token))
		step = 1
	}

	if err := p.postParseCheck(); err != nil {
		return err
	}
	return p.runBinders()
}

func (p *Parser) runBinders() error {
	for _, bind := range p.binders {
		if err := bind(); err != nil {
			return err
		}
	}
	return nil
}

// parseLongArg handles one --name or --name=value token and returns how
// many tokens it consumed.
func (p *Parser) parseLongArg(args []string, offset int) (int, error) {
	name, value, hasValue := splitLongArg(args[offset][2:])

	if p.helpEnabled && name == helpName {
		return 0, ErrHelpRequested
	}

	h := p.holderByFullName(name)
	if h == nil {
		return 0, p.unknownLongOption(name)
	}

	if hasValue {
		if !h.requiresValue() {
			return 0, parseErrorf(ErrorTypeSyntax, "long option doesn't require a value (`%s`)", name).WithArg(name)
		}
		if err := h.processValue(value); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if !h.requiresValue() {
		if err := h.processFlag(); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if offset+1 >= len(args) {
		return 0, parseErrorf(ErrorTypeSyntax, "no value provided for a long option (`%s`)", name).WithArg(name)
	}
	if err := h.processValue(args[offset+1]); err != nil {
		return 0, err
	}
	return 2, nil
}

// parseShortArgs handles one short option group and returns how many tokens
// it consumed.
func (p *Parser) parseShortArgs(args []string, offset int) (int, error) {
	arg := args[offset]

	if p.helpEnabled && arg == "-"+string(helpShort) && p.holderByShortName(helpShort) == nil {
		return 0, ErrHelpRequested
	}

	group := []rune(arg[1:])
	for i, ch := range group {
		h := p.holderByShortName(ch)
		if h == nil {
			return 0, parseErrorf(ErrorTypeSyntax, "unknown short option (`%c`)", ch).WithArg(string(ch))
		}

		if h.requiresValue() {
			if i+1 == len(group) {
				// last short option of a group requiring a value
				// (e.g. -euxo pipefail)
				if offset+1 >= len(args) {
					return 0, parseErrorf(ErrorTypeSyntax, "no value provided for a short option (`%c`)", ch).WithArg(string(ch))
				}
				if err := h.processValue(args[offset+1]); err != nil {
					return 0, err
				}
				return 2, nil
			}

			if i == 0 && len(group) > 1 {
				// option like -j5
				if err := h.processValue(string(group[1:])); err != nil {
					return 0, err
				}
				return 1, nil
			}

			return 0, parseErrorf(ErrorTypeSyntax,
				"short option requiring an argument is not allowed in the middle of short options group").
				WithArg(string(ch))
		}

		if err := h.processFlag(); err != nil {
			return 0, err
		}
	}

	return 1, nil
}

// unknownLongOption builds the unknown-option error with did-you-mean
// candidates from every visible namespace.
func (p *Parser) unknownLongOption(name string) error {
	err := parseErrorf(ErrorTypeSyntax, "unknown long option (`%s`)", name).WithArg(name)
	if sugg := fuzzy.Suggestions(name, p.optionNames(), suggestMaxDistance, suggestMaxCount); len(sugg) > 0 {
		err = err.WithSuggestions(sugg...)
	}
	return err
}

// optionNames lists every resolvable full name, globals first.
func (p *Parser) optionNames() []string {
	var names []string
	if p.mergeGlobals {
		names = append(names, p.globals.names()...)
	}
	return append(names, p.named.names()...)
}

// holderByFullName resolves a long name, global Registry first when merged.
func (p *Parser) holderByFullName(name string) holder {
	if p.mergeGlobals {
		if h := p.globals.holderByFullName(name); h != nil {
			return h
		}
	}
	return p.named.holderByFullName(name)
}

// holderByShortName resolves a short name, global Registry first when
// merged.
func (p *Parser) holderByShortName(short rune) holder {
	if p.mergeGlobals {
		if h := p.globals.holderByShortName(short); h != nil {
			return h
		}
	}
	return p.named.holderByShortName(short)
}

// applyEnvFallback runs the environment fallback before the scan, in
// post-parse-check order: globals, named, positionals.
func (p *Parser) applyEnvFallback() error {
	if p.mergeGlobals {
		if err := p.globals.applyEnv(); err != nil {
			return err
		}
	}
	if err := p.named.applyEnv(); err != nil {
		return err
	}
	return p.positionals.applyEnv()
}

// postParseCheck verifies every required argument ended up with a value:
// globals, named, positionals, first failure wins.
func (p *Parser) postParseCheck() error {
	if p.mergeGlobals {
		if err := p.globals.postParseCheck(); err != nil {
			return err
		}
	}
	if err := p.named.postParseCheck(); err != nil {
		return err
	}
	return p.positionals.postParseCheck()
}

// splitLongArg splits the part after "--" at the first '='. An empty value
// after '=' still counts as a value.
func splitLongArg(s string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// escapeValue strips one leading backslash so dash-prefixed literals can be
// passed as positional or free values.
func escapeValue(token string) string {
	if strings.HasPrefix(token, `\`) {
		return token[1:]
	}
	return token
}

// positionalName keys positional holders by ordinal. The synthetic name is
// observable in post-parse errors for required positionals.
func positionalName(position int) string {
	return "__positional_argument__" + strconv.Itoa(position)
}

// IsHelpRequested reports whether err is the help sentinel, regardless of
// wrapping.
func IsHelpRequested(err error) bool {
	return errors.Is(err, ErrHelpRequested)
}
