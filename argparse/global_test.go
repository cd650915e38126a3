//nolint:testpackage // using package name 'argparse' to reach unexported pieces
package argparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Declared once for the whole test binary, the way a real program declares
// its globals next to the packages that consume them. Names carry a g
// prefix so no parser-scoped test collides with them.
var (
	gVerbose = AddGlobalFlag("gverbose", "enable verbose output").Short('V')
	gRetries = AddGlobalArg[int]("gretries", "how many times to retry").Default(3)
	gServers = AddGlobalMultiArg[string]("gserver", "upstream server to query")
)

// TestGlobalDeclarationsResolve is the only test that parses a vector
// touching the shared holders, so their state stays deterministic.
func TestGlobalDeclarationsResolve(t *testing.T) {
	p := NewParser()
	local := AddArg[string](p, "glocal", "")

	err := p.ParseArgs([]string{
		"binary", "-V", "--gretries", "5",
		"--gserver", "alpha", "--gserver", "beta", "--glocal", "x",
	})
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !gVerbose.IsSet() {
		t.Error("Expected the global flag to resolve through the parser")
	}
	if v, ok := gRetries.Get(); !ok || v != 5 {
		t.Errorf("Expected gretries=5, got %d (ok %v)", v, ok)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, gServers.Values()); diff != "" {
		t.Errorf("Servers mismatch (-want +got):\n%s", diff)
	}
	if v, ok := local.Get(); !ok || v != "x" {
		t.Errorf("Expected the parser-scoped argument to parse too, got %q (ok %v)", v, ok)
	}
}

func TestGlobalNameCollisions(t *testing.T) {
	mustPanicContain(t, "argument is already defined (`gverbose`)", func() {
		AddGlobalFlag("gverbose", "")
	})

	// A merging parser can't shadow a global name either.
	p := NewParser()
	mustPanicContain(t, "argument is already defined (`gverbose`)", func() {
		p.AddFlag("gverbose", "")
	})
}

// IgnoreGlobalArgs frees the whole namespace: the name resolves to the
// parser-scoped declaration and the shared holder is never touched.
func TestIgnoreGlobalArgsFreesNames(t *testing.T) {
	p := NewParser().IgnoreGlobalArgs()
	shadow := p.AddFlag("gverbose", "").Short('V')
	if err := p.ParseArgs([]string{"binary", "--gverbose"}); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !shadow.IsSet() {
		t.Error("Expected the parser-scoped shadow to be set")
	}

	p = NewParser().IgnoreGlobalArgs()
	err := p.ParseArgs([]string{"binary", "--gretries", "5"})
	wantParseError(t, err, ErrorTypeSyntax, "unknown long option (`gretries`)")
}

func TestGlobalNamesFeedSuggestions(t *testing.T) {
	p := NewParser()
	err := p.ParseArgs([]string{"binary", "--gretris"})
	wantParseError(t, err, ErrorTypeSyntax, "unknown long option (`gretris`)")
	perr := err.(*ParseError)
	if len(perr.Suggestions) == 0 || perr.Suggestions[0] != "gretries" {
		t.Errorf("Expected gretries as the first suggestion, got %v", perr.Suggestions)
	}
}
