package deckcli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.lessondeck.sh/pkg/deckcli"
	"src.lessondeck.sh/pkg/prog/progtest"
	"src.lessondeck.sh/pkg/testutil"
)

var (
	Test           = progtest.Test
	ThatLessondeck = progtest.ThatLessondeck
)

var deckLayout = testutil.Dir{
	"swift": testutil.Dir{
		"1.Basic.swift":        "//: [Next](@next)\nlet x = 1\n",
		"03. Collection.swift": "//: [Previous](@previous) | [Next](@next)\nvar a = [1]\n",
		"04. Control Flow.md":  "Use *for* loops to repeat work.\n",
	},
	"dup": testutil.Dir{
		"a b.md": "one\n",
		"a-b.md": "two\n",
	},
}

func setup(t *testing.T) string {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(deckLayout)
	return dir
}

func deck(args ...string) progtest.Case {
	return ThatLessondeck(append([]string{"-deck", "swift"}, args...)...)
}

func TestList(t *testing.T) {
	setup(t)

	Test(t, Program{},
		deck("list").WritesStdout(
			"1-basic\tBasic\n03-collection\tCollection\n04-control-flow\tControl Flow\n"),
		deck("list").WithTTYStdout(80).WritesStdout(
			"1-basic\t\033[1mBasic\033[m\n" +
				"03-collection\t\033[1mCollection\033[m\n" +
				"04-control-flow\t\033[1mControl Flow\033[m\n"),
		deck("list", "extra").ExitsWith(2).WritesStderrContaining("list: need no arguments\nUsage:"),

		ThatLessondeck("-deck", "dup", "list").
			ExitsWith(1).WritesStderrContaining(`duplicate unit id "a-b"`),
		ThatLessondeck("-deck", "nowhere", "list").
			ExitsWith(1).WritesStderrContaining("nowhere"),
	)
}

func TestShow(t *testing.T) {
	setup(t)

	Test(t, Program{},
		deck("show", "03-collection").WritesStdout(
			"Collection\n==========\n\nPrevious | Next\n\n    var a = [1]\n"),
		deck("show", "03. Collection").WritesStdout(
			"Collection\n==========\n\nPrevious | Next\n\n    var a = [1]\n"),
		deck("show", "1-basic", "--format", "markdown").WritesStdout(
			"# Basic\n\n[Next](03-collection.md)\n\n```swift\nlet x = 1\n```\n"),
		deck("show", "--format=html", "1-basic").WritesStdoutContaining(
			"<p><a href=\"03-collection.html\">Next</a></p>\n"),
		deck("show", "04-control-flow", "--width", "10").WritesStdoutContaining(
			"\n\nUse for\nloops to\nrepeat\nwork.\n"),

		deck("show", "nonexistent-id").
			ExitsWith(2).
			WritesStderr("show: no unit with id \"nonexistent-id\"\n"),
		deck("show", "03. Collection", "--format", "pdf").
			ExitsWith(3).
			WritesStderr("show: unsupported format \"pdf\" (want plain, html or markdown)\n"),
		deck("show").ExitsWith(2).WritesStderrContaining("show: need exactly one unit id\nUsage:"),
		deck("show", "1-basic", "--bad").
			ExitsWith(2).WritesStderrContaining("show: flag provided but not defined: -bad"),
		ThatLessondeck("-deck", "dup", "show", "a-b").ExitsWith(1).WritesStderrContaining("duplicate"),
	)
}

func TestNextAndPrev(t *testing.T) {
	setup(t)

	Test(t, Program{},
		deck("next", "1-basic").WritesStdout("03-collection\n"),
		deck("next", "03. Collection").WritesStdout("04-control-flow\n"),
		deck("next", "04-control-flow").WritesStdout("<end>\n"),
		deck("prev", "03-collection").WritesStdout("1-basic\n"),
		deck("prev", "1-basic").WritesStdout("<start>\n"),

		deck("next", "nope").ExitsWith(2).WritesStderr("next: no unit with id \"nope\"\n"),
		deck("prev", "nope").ExitsWith(2).WritesStderr("prev: no unit with id \"nope\"\n"),
		deck("prev").ExitsWith(2).WritesStderrContaining("prev: need exactly one unit id"),
	)
}

func TestExport(t *testing.T) {
	setup(t)

	Test(t, Program{},
		deck("export", "out", "--format", "markdown").DoesNothing(),
		deck("export", "html").DoesNothing(),
		deck("export", "out", "--format", "pdf").ExitsWith(3).WritesStderrContaining(`"pdf"`),
		deck("export").ExitsWith(2).WritesStderrContaining("export: need exactly one output directory"),
	)

	for _, name := range []string{
		"out/_index.md", "out/1-basic.md", "out/04-control-flow.md",
		"html/_index.html", "html/03-collection.html",
	} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("export did not write %s: %v", name, err)
		}
	}
}

func TestExport_UnwritableDir(t *testing.T) {
	setup(t)
	testutil.ApplyDir(testutil.Dir{"file": "not a directory"})

	Test(t, Program{},
		deck("export", filepath.Join("file", "out")).ExitsWith(1).WritesStderrContaining("export: "),
	)
}

func TestUnknownCommand(t *testing.T) {
	setup(t)

	Test(t, Program{},
		ThatLessondeck().ExitsWith(2).WritesStderrContaining("no command given\nUsage:"),
		ThatLessondeck("frobnicate").
			ExitsWith(2).WritesStderrContaining("unknown command \"frobnicate\""),
	)
}

func TestStoreCommands_NeedDB(t *testing.T) {
	setup(t)

	Test(t, Program{},
		deck("mark", "1-basic").ExitsWith(2).WritesStderrContaining("mark: -db is required\nUsage:"),
		deck("resume").ExitsWith(2).WritesStderrContaining("resume: -db is required"),
		deck("history").ExitsWith(2).WritesStderrContaining("history: -db is required"),
		deck("decks").ExitsWith(2).WritesStderrContaining("decks: -db is required"),
	)
}

func TestBookmarks(t *testing.T) {
	dir := setup(t)
	db := filepath.Join(dir, "db")
	withDB := func(args ...string) progtest.Case {
		return deck(append([]string{"-db", db}, args...)...)
	}

	Test(t, Program{},
		withDB("resume").ExitsWith(2).WritesStderrContaining("resume: no bookmark for deck "),
		withDB("mark", "nope").ExitsWith(2).WritesStderr("mark: no unit with id \"nope\"\n"),
		withDB("mark", "03. Collection").DoesNothing(),
		withDB("resume").WritesStdout(
			"Collection\n==========\n\nPrevious | Next\n\n    var a = [1]\n"),
		withDB("resume", "--format", "markdown").WritesStdoutContaining("# Collection\n"),
		withDB("resume", "--format", "pdf").ExitsWith(3).WritesStderrContaining(`"pdf"`),
	)
}

func TestHistory(t *testing.T) {
	dir := setup(t)
	// Keep deck paths unabbreviated.
	t.Setenv("HOME", "/nonexistent")
	db := filepath.Join(dir, "db")
	withDB := func(args ...string) []string {
		return append([]string{"-deck", "swift", "-db", db}, args...)
	}

	for _, id := range []string{"1-basic", "03-collection", "04-control-flow"} {
		if exit, _, stderr := progtest.Run(Program{}, withDB("show", id)...); exit != 0 {
			t.Fatalf("show %s exited with %d: %s", id, exit, stderr)
		}
	}
	// Failed lookups are not recorded.
	progtest.Run(Program{}, withDB("show", "nope")...)

	exit, stdout, stderr := progtest.Run(Program{}, withDB("history", "--n", "2")...)
	if exit != 0 {
		t.Fatalf("history exited with %d: %s", exit, stderr)
	}
	var got [][]string
	for _, line := range strings.Split(strings.TrimSuffix(stdout, "\n"), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			t.Fatalf("history line %q does not have 3 fields", line)
		}
		got = append(got, fields[:2])
	}
	want := [][]string{{"3", "04-control-flow"}, {"2", "03-collection"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}

	_, stdout, _ = progtest.Run(Program{}, withDB("history", "--n", "0")...)
	if n := strings.Count(stdout, "\n"); n != 3 {
		t.Errorf("history --n 0 listed %d visits, want 3", n)
	}

	// Without -db, show records nothing.
	progtest.Run(Program{}, "-deck", "swift", "show", "1-basic")
	_, stdout, _ = progtest.Run(Program{}, withDB("history", "--n", "0")...)
	if n := strings.Count(stdout, "\n"); n != 3 {
		t.Errorf("show without -db recorded a visit")
	}

	Test(t, Program{},
		ThatLessondeck("-deck", "swift", "-db", db, "decks").WritesStdout(
			"29.58\t"+filepath.Join(dir, "swift")+"\n"),
	)
}
