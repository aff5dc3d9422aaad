package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// cleanuper records cleanup functions so that tests can run them early.
type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)

	if err := os.WriteFile(filepath.Join(dir, "a"), []byte("test"), 0600); err != nil {
		t.Fatal(err)
	}
	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir_RestoresWorkingDirectory(t *testing.T) {
	original, _ := os.Getwd()
	c := &cleanuper{}
	dir := InTempDir(c)

	if wd, _ := os.Getwd(); wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("working directory restored to %q, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{
			"d1": "d1 content",
			"dd": Dir{"dd1": "dd1 content"},
		},
		"x": File{Perm: 0600, Content: "x content"},
	})
	ApplyDir(Dir{"d": Dir{"d2": "d2 content"}})

	for name, want := range map[string]string{
		"a": "a content", "d/d1": "d1 content", "d/d2": "d2 content",
		"d/dd/dd1": "dd1 content", "x": "x content",
	} {
		content, err := os.ReadFile(filepath.FromSlash(name))
		if err != nil {
			t.Errorf("could not read %v: %v", name, err)
		} else if string(content) != want {
			t.Errorf("file %v is %q, want %q", name, content, want)
		}
	}
}
