package source

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"src.lessondeck.sh/pkg/lesson"
)

// Dir is a directory of lesson files. Each regular file with a recognized
// extension is one lesson, named after the file without its extension.
type Dir struct {
	Path string
}

func (d Dir) Sources() ([]lesson.Source, error) {
	return FS{FS: os.DirFS(d.Path), Name: filepath.Base(d.Path)}.Sources()
}

func (d Dir) Title() string { return filepath.Base(d.Path) }

// FS is like Dir, but reads from Dir within an fs.FS, such as an embedded
// resource bundle.
type FS struct {
	FS  fs.FS
	Dir string
	// Name is returned by Title. If empty, the base name of Dir is used.
	Name string
}

func (f FS) Sources() ([]lesson.Source, error) {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	return readLessons(f.FS, dir)
}

func (f FS) Title() string {
	if f.Name != "" {
		return f.Name
	}
	return path.Base(f.Dir)
}
