package source

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"src.lessondeck.sh/pkg/lesson"
)

const (
	pageExt      = ".xcplaygroundpage"
	contentsFile = "Contents.swift"
	// PlaygroundLang is the language of playground pages.
	PlaygroundLang = "swift"
)

// Playground is an Xcode playground bundle. Each page directory
// "Pages/<name>.xcplaygroundpage" (or "<name>.xcplaygroundpage" at the top
// level) is one lesson named <name>, whose body is its Contents.swift. A
// bundle without pages is a single lesson.
type Playground struct {
	Path string
}

func (p Playground) Sources() ([]lesson.Source, error) {
	fsys := os.DirFS(p.Path)
	dirs := pageDirs(fsys)
	if len(dirs) == 0 {
		src, err := readPage(fsys, contentsFile, p.Title())
		if err != nil {
			return nil, &Error{filepath.Join(p.Path, contentsFile), err}
		}
		return []lesson.Source{src}, nil
	}
	var (
		srcs []lesson.Source
		errs []error
	)
	for _, dir := range dirs {
		name := strings.TrimSuffix(path.Base(dir), pageExt)
		contents := dir + "/" + contentsFile
		src, err := readPage(fsys, contents, name)
		if err != nil {
			errs = append(errs, &Error{filepath.Join(p.Path, filepath.FromSlash(contents)), err})
			continue
		}
		srcs = append(srcs, src)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return srcs, nil
}

func (p Playground) Title() string {
	return strings.TrimSuffix(filepath.Base(p.Path), ".playground")
}

func readPage(fsys fs.FS, p, name string) (lesson.Source, error) {
	src, err := readLesson(fsys, p, name)
	if err != nil {
		return src, err
	}
	if src.Meta.Lang == "" {
		src.Meta.Lang = PlaygroundLang
	}
	return src, nil
}

// pageDirs returns the page directories of a playground, in the order the
// file system lists them.
func pageDirs(fsys fs.FS) []string {
	var dirs []string
	for _, parent := range []string{"Pages", "."} {
		entries, err := fs.ReadDir(fsys, parent)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && strings.HasSuffix(entry.Name(), pageExt) {
				dirs = append(dirs, pathJoin(parent, entry.Name()))
			}
		}
	}
	return dirs
}

func isPlayground(fsys fs.FS) bool {
	if len(pageDirs(fsys)) > 0 {
		return true
	}
	_, err := fs.Stat(fsys, "contents.xcplayground")
	return err == nil
}
