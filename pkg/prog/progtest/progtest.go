// Package progtest provides a framework for testing subprograms.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T, the Program implementation under test, and any number of test
// cases.
//
// Test cases are constructed using the ThatLessondeck function, followed by
// method calls that add additional information to it.
//
// Example:
//
//	Test(t, someProgram,
//		ThatLessondeck("-version").WritesStdout("0.3.0\n"),
//		ThatLessondeck("-bad-flag").
//			ExitsWith(2).
//			WritesStderrContaining("flag provided but not defined: -bad-flag"),
//	)
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"src.lessondeck.sh/pkg/must"
	"src.lessondeck.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	// Width of the pseudo terminal used as stdout; 0 uses a pipe.
	ttyCols int
	want    result
}

type result struct {
	exitStatus int
	out        output
	err        output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + quote(o.content)
	}
	return quote(o.content)
}

func quote(s string) string { return "\"" + strings.ReplaceAll(s, "\n", `\n`) + "\"" }

// ThatLessondeck returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "lessondeck -bad-flag" exits with 2
// would look like:
//
//	ThatLessondeck("-bad-flag").ExitsWith(2)
func ThatLessondeck(args ...string) Case {
	return Case{args: append([]string{"lessondeck"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin
// of the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// WithTTYStdout returns an altered Case that connects stdout of the program to
// a pseudo terminal with the given number of columns. Carriage returns the
// terminal adds before newlines are removed before the output is compared.
func (c Case) WithTTYStdout(cols int) Case {
	c.ttyCols = cols
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatLessondeck("-cpuprofile", "x").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.out, c.want.out) {
				t.Errorf("got stdout %v, want %v", r.out, c.want.out)
			}
			if !matchOutput(r.err, c.want.err) {
				t.Errorf("got stderr %v, want %v", r.err, c.want.err)
			}
		})
	}
}

// Run runs a Program with the given arguments. It returns the exit status
// and the output written to stdout and stderr.
//
// It is useful when the output needs to be checked in ways the Case methods
// don't support.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r := run(nil, p, ThatLessondeck(args...))
	return r.exitStatus, r.out.content, r.err.content
}

func run(t *testing.T, p prog.Program, c Case) result {
	r0, w0 := must.OK2(os.Pipe())
	go func() {
		io.WriteString(w0, c.stdin)
		w0.Close()
	}()
	defer r0.Close()

	var r1, w1 *os.File
	if c.ttyCols > 0 {
		r1, w1 = openTTY(t, c.ttyCols)
	} else {
		r1, w1 = must.OK2(os.Pipe())
	}
	r2, w2 := must.OK2(os.Pipe())
	stdout := readAllAsync(r1)
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, c.args, p)
	w1.Close()
	w2.Close()

	out := <-stdout
	if c.ttyCols > 0 {
		out = strings.ReplaceAll(out, "\r\n", "\n")
	}
	return result{exit, output{content: out}, output{content: <-stderr}}
}

func openTTY(t *testing.T, cols int) (ptmx, tty *os.File) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		if t != nil {
			t.Skip("cannot open pty:", err)
		}
		panic(err)
	}
	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: uint16(cols)}))
	return ptmx, tty
}

// readAllAsync reads r until EOF or an error, which is how the master side
// of a pty reports that the slave side has been closed, and closes it.
func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}

func matchOutput(got, want output) bool {
	if want.partial {
		return strings.Contains(got.content, want.content)
	}
	return got.content == want.content
}
