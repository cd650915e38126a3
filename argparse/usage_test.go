//nolint:testpackage // using package name 'argparse' to reach unexported pieces
package argparse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func plainColors(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestUsageRendering(t *testing.T) {
	plainColors(t)

	p := newTestParser().EnableFreeArgs().EnableHelp().SetName("filetool", "process files")
	AddArg[int](p, "jobs", "parallel jobs").Short('j').Default(4)
	p.AddFlag("verbose", "chatty output").Short('v')
	AddArg[string](p, "mode", "").Options("fast", "safe").Required()
	AddPositionalArg[string](p, "input file")

	var buf bytes.Buffer
	p.Usage(&buf)

	want := strings.Join([]string{
		"filetool - process files",
		"",
		"Usage:",
		"  filetool [OPTIONS] <arg1> [ARGS...]",
		"",
		"Options:",
		"  --jobs, -j value  parallel jobs (default: 4)",
		"  --verbose, -v     chatty output",
		"  --mode value      (required) (options: fast, safe)",
		"",
		"Positional arguments:",
		"  <arg1>  input file",
		"",
		"Use `filetool --help` to show this text.",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Usage mismatch (-want +got):\n%s", diff)
	}
}

// Global options render in their own section, aligned with the local ones.
func TestUsageGlobalSection(t *testing.T) {
	plainColors(t)

	globals := NewRegistry()
	globals.AddFlag("trace", "enable tracing")
	p := NewParserWithGlobals(globals).SetName("tool", "")
	AddArg[int](p, "jobs", "parallel jobs").Short('j')

	var buf bytes.Buffer
	p.Usage(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "Usage:\n") {
		t.Errorf("Expected no description header, got:\n%s", out)
	}
	global := strings.Index(out, "Global options:")
	local := strings.Index(out, "Options:\n")
	if global < 0 || local < 0 || global > local {
		t.Fatalf("Expected global options before local ones, got:\n%s", out)
	}
	// Both labels pad to the widest one, "--jobs, -j value".
	if !strings.Contains(out, "  --trace           enable tracing\n") {
		t.Errorf("Expected the global line aligned to the local width, got:\n%s", out)
	}
	if !strings.Contains(out, "  --jobs, -j value  parallel jobs\n") {
		t.Errorf("Expected the local line, got:\n%s", out)
	}
}

func TestUsageDetails(t *testing.T) {
	plainColors(t)

	p := newTestParser().SetName("tool", "")
	AddArg[string](p, "region", "deployment region").Required().FromEnv("REGION")
	AddMultiArg[int](p, "port", "listen port").Default(80, 443)

	var buf bytes.Buffer
	p.Usage(&buf)
	out := buf.String()

	if !strings.Contains(out, "deployment region (required) (env: REGION)") {
		t.Errorf("Expected required and env details, got:\n%s", out)
	}
	if !strings.Contains(out, "listen port (default: 80, 443)") {
		t.Errorf("Expected the multi-value default rendered as a list, got:\n%s", out)
	}
	if strings.Contains(out, "--help") {
		t.Errorf("Expected no help footer without EnableHelp, got:\n%s", out)
	}
}

func TestWriteError(t *testing.T) {
	plainColors(t)

	p := newTestParser()
	AddArg[int](p, "integer", "")
	err := p.ParseArgs([]string{"binary", "--intger", "1"})

	var buf bytes.Buffer
	p.WriteError(&buf, err)

	want := "Error: unknown long option (`intger`)\n" +
		"  Did you mean `--integer`?\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Error output mismatch (-want +got):\n%s", diff)
	}
}
