package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.Bold).SprintFunc()
	optionColor  = color.New(color.FgCyan).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	suggestColor = color.New(color.FgYellow).SprintFunc()
)

// Usage writes the usage text: one line per declared argument in
// declaration order, global options first, positionals last. Color is
// dropped automatically when w is not a terminal or NO_COLOR is set.
func (p *Parser) Usage(w io.Writer) {
	name := p.programName()
	if p.about != "" {
		fmt.Fprintf(w, "%s - %s\n\n", headerColor(name), p.about)
	}

	fmt.Fprintf(w, "%s\n  %s [OPTIONS]", headerColor("Usage:"), name)
	for i := 0; i < p.positionals.size(); i++ {
		fmt.Fprintf(w, " <arg%d>", i+1)
	}
	if p.freeEnabled {
		fmt.Fprint(w, " [ARGS...]")
	}
	fmt.Fprintln(w)

	if p.mergeGlobals && p.globals.size() > 0 {
		p.writeHolders(w, "Global options:", p.globals)
	}
	if p.named.size() > 0 {
		p.writeHolders(w, "Options:", p.named)
	}
	p.writePositionals(w)

	if p.helpEnabled {
		fmt.Fprintf(w, "\nUse `%s --help` to show this text.\n", name)
	}
}

// WriteError renders a parse failure with its suggestions. The exit layer
// calls it before exiting; callers handling errors themselves can too.
func (p *Parser) WriteError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorColor("Error:"), err)

	var perr *ParseError
	if errors.As(err, &perr) {
		for _, s := range perr.Suggestions {
			fmt.Fprintf(w, "  %s\n", suggestColor(fmt.Sprintf("Did you mean `--%s`?", s)))
		}
	}
}

func (p *Parser) writeHolders(w io.Writer, title string, reg *Registry) {
	width := p.labelWidth()
	fmt.Fprintf(w, "\n%s\n", headerColor(title))
	for _, h := range reg.ordered {
		writeHolderLine(w, h, width)
	}
}

func (p *Parser) writePositionals(w io.Writer) {
	if p.positionals.size() == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", headerColor("Positional arguments:"))

	width := 0
	for i := range p.positionals.ordered {
		if n := len(positionalLabel(i)); n > width {
			width = n
		}
	}
	for i, h := range p.positionals.ordered {
		label := positionalLabel(i)
		desc := describeHolder(h)
		if desc == "" {
			fmt.Fprintf(w, "  %s\n", optionColor(label))
			continue
		}
		fmt.Fprintf(w, "  %s%s%s\n", optionColor(label), strings.Repeat(" ", width-len(label)+2), desc)
	}
}

// labelWidth is the widest option label across every section, so columns
// align between global and local options.
func (p *Parser) labelWidth() int {
	width := 0
	consider := func(reg *Registry) {
		for _, h := range reg.ordered {
			if n := len(holderLabel(h)); n > width {
				width = n
			}
		}
	}
	if p.mergeGlobals {
		consider(p.globals)
	}
	consider(p.named)
	return width
}

func writeHolderLine(w io.Writer, h holder, width int) {
	label := holderLabel(h)
	desc := describeHolder(h)
	if desc == "" {
		fmt.Fprintf(w, "  %s\n", optionColor(label))
		return
	}
	fmt.Fprintf(w, "  %s%s%s\n", optionColor(label), strings.Repeat(" ", width-len(label)+2), desc)
}

// holderLabel renders "--name, -n value"; padding is computed on this plain
// text before any color is applied.
func holderLabel(h holder) string {
	b := h.base()
	label := "--" + b.fullName
	if b.short != 0 {
		label += ", -" + string(b.short)
	}
	if h.requiresValue() {
		label += " value"
	}
	return label
}

func positionalLabel(i int) string {
	return fmt.Sprintf("<arg%d>", i+1)
}

// describeHolder joins the help text with the configured constraints.
func describeHolder(h holder) string {
	b := h.base()
	desc := b.help
	appendDetail := func(d string) {
		if desc != "" {
			desc += " "
		}
		desc += "(" + d + ")"
	}
	if b.required {
		appendDetail("required")
	}
	if b.defaultDesc != "" {
		appendDetail("default: " + b.defaultDesc)
	}
	if b.optionsDesc != "" {
		appendDetail("options: " + b.optionsDesc)
	}
	if b.envKey != "" {
		appendDetail("env: " + b.envKey)
	}
	return desc
}

func (p *Parser) programName() string {
	if p.name != "" {
		return p.name
	}
	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return "program"
}
