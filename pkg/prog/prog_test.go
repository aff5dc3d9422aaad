package prog_test

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lessondeck.sh/pkg/logutil"
	. "src.lessondeck.sh/pkg/prog"
	"src.lessondeck.sh/pkg/prog/progtest"
	"src.lessondeck.sh/pkg/testutil"
)

var (
	Test           = progtest.Test
	ThatLessondeck = progtest.ThatLessondeck
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, testProgram{},
		ThatLessondeck("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatLessondeck("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatLessondeck("-help").
			WritesStdoutContaining("Usage: lessondeck [flags] <command> [args]"),

		ThatLessondeck("-cpuprofile", "cpuprof").DoesNothing(),
		ThatLessondeck("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat("cpuprof")
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	dir := testutil.TempDir(t)
	logFile := filepath.Join(dir, "log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	Test(t, testProgram{},
		ThatLessondeck("-log", logFile).DoesNothing(),
		ThatLessondeck("-log", filepath.Join(dir, "no", "such", "dir")).
			WritesStderrContaining("no such file or directory"),
	)
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestFlagsPassedToProgram(t *testing.T) {
	var got Flags
	var gotArgs []string
	p := programFunc(func(fds [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = *f, args
		return nil
	})

	Test(t, p,
		ThatLessondeck("-deck", "swift", "-db", "db", "show", "1-basic").DoesNothing())

	if got.Deck != "swift" || got.DB != "db" {
		t.Errorf("got flags %+v, want Deck=swift DB=db", got)
	}
	if diff := cmp.Diff([]string{"show", "1-basic"}, gotArgs); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}

	Test(t, p, ThatLessondeck("list").DoesNothing())
	if got.Deck != "." || got.DB != "" {
		t.Errorf("got default flags %+v, want Deck=. DB=\"\"", got)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatLessondeck().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatLessondeck().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatLessondeck().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatLessondeck().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatLessondeck().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatLessondeck().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatLessondeck().ExitsWith(0),
	)
}

var parseOptionsTests = []struct {
	name     string
	args     []string
	wantArgs []string
	wantFmt  string
	wantN    int
	wantErr  string
}{
	{
		name:     "no options",
		args:     []string{"1-basic"},
		wantArgs: []string{"1-basic"},
	},
	{
		name:     "options after positional",
		args:     []string{"1-basic", "--format", "html", "--n", "3"},
		wantArgs: []string{"1-basic"},
		wantFmt:  "html",
		wantN:    3,
	},
	{
		name:     "options between positional",
		args:     []string{"a", "-format=markdown", "b"},
		wantArgs: []string{"a", "b"},
		wantFmt:  "markdown",
	},
	{
		name:     "double dash ends options",
		args:     []string{"--format", "html", "--", "--n"},
		wantArgs: []string{"--n"},
		wantFmt:  "html",
	},
	{
		name:    "undefined option",
		args:    []string{"a", "--bad"},
		wantErr: "show: flag provided but not defined: -bad",
	},
	{
		name:    "-h is undefined",
		args:    []string{"-h"},
		wantErr: "show: flag provided but not defined: -h",
	},
}

func TestParseOptions(t *testing.T) {
	for _, test := range parseOptionsTests {
		t.Run(test.name, func(t *testing.T) {
			var format string
			var n int
			args, err := ParseOptions("show", test.args, func(fs *flag.FlagSet) {
				fs.StringVar(&format, "format", "", "")
				fs.IntVar(&n, "n", 0, "")
			})
			if test.wantErr != "" {
				if err == nil || err.Error() != test.wantErr {
					t.Fatalf("got error %v, want %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if diff := cmp.Diff(test.wantArgs, args); diff != "" {
				t.Errorf("args (-want +got):\n%s", diff)
			}
			if format != test.wantFmt || n != test.wantN {
				t.Errorf("got format=%q n=%d, want format=%q n=%d",
					format, n, test.wantFmt, test.wantN)
			}
		})
	}
}

func TestParseOptions_BadUsageExitsWith2(t *testing.T) {
	p := programFunc(func(fds [3]*os.File, f *Flags, args []string) error {
		_, err := ParseOptions("show", args, nil)
		return err
	})
	exit, _, stderr := progtest.Run(p, "--", "--bad")
	if exit != 2 {
		t.Errorf("got exit %d, want 2", exit)
	}
	if !strings.HasPrefix(stderr, "show: flag provided but not defined: -bad\nUsage:") {
		t.Errorf("got stderr %q", stderr)
	}
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type programFunc func(fds [3]*os.File, f *Flags, args []string) error

func (p programFunc) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
