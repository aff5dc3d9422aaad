package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "lessondecktest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			panic(err)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory. The working
// directory is restored after the test.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes.
func Chdir(c Cleanuper, dir string) {
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			panic(err)
		}
	})
}

// Dir describes the layout of a directory. The keys are file names and the
// values are either a string for the content of a regular file, a File, or a
// nested Dir.
type Dir map[string]any

// File describes a file to create.
type File struct {
	Perm    os.FileMode
	Content string
}

// ApplyDir creates the given layout in the current directory.
func ApplyDir(dir Dir) {
	ApplyDirIn(dir, "")
}

// ApplyDirIn creates the given layout in a directory. Existing directories are
// reused and existing files are overwritten.
func ApplyDirIn(dir Dir, root string) {
	for name, item := range dir {
		p := filepath.Join(root, name)
		switch item := item.(type) {
		case string:
			write(p, item, 0644)
		case File:
			write(p, item.Content, item.Perm)
		case Dir:
			if err := os.MkdirAll(p, 0755); err != nil {
				panic(err)
			}
			ApplyDirIn(item, p)
		default:
			panic("file must be string, File or Dir")
		}
	}
}

func write(name, content string, perm os.FileMode) {
	if err := os.WriteFile(name, []byte(content), perm); err != nil {
		panic(err)
	}
}
