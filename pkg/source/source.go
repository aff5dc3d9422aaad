// Package source enumerates lesson descriptors from storage backends.
//
// Every backend implements Provider. Open picks one from a path:
//
//   - a deck.toml manifest, or a directory containing one;
//   - an Xcode playground bundle;
//   - any other directory, whose files are lessons.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"src.lessondeck.sh/pkg/lesson"
	"src.lessondeck.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[source] ")

// Provider enumerates the raw descriptors of a deck.
type Provider interface {
	// Sources returns all descriptors. Each call reads the backend afresh.
	Sources() ([]lesson.Source, error)
	// Title returns a human-readable title for the whole deck.
	Title() string
}

// ManifestName is the name of the manifest file looked for by Open.
const ManifestName = "deck.toml"

// Error records a failure to read one lesson file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Open returns a Provider for path.
func Open(path string) (Provider, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if filepath.Ext(path) == ".toml" {
			return Manifest{Path: path}, nil
		}
		return nil, fmt.Errorf("%s: not a directory or a %s manifest", path, ManifestName)
	}
	if fileExists(filepath.Join(path, ManifestName)) {
		return Manifest{Path: filepath.Join(path, ManifestName)}, nil
	}
	if isPlayground(os.DirFS(path)) || filepath.Ext(path) == ".playground" {
		return Playground{Path: path}, nil
	}
	return Dir{Path: path}, nil
}

// Load reads all sources from p, logging how many were found.
func Load(p Provider) ([]lesson.Source, error) {
	srcs, err := p.Sources()
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded %d sources for %q", len(srcs), p.Title())
	return srcs, nil
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// Lesson files are recognized by extension. Files without an extension are
// accepted too.
var lessonExts = map[string]bool{
	"": true, ".md": true, ".markdown": true, ".txt": true, ".swift": true,
}

// Language of lesson files with a source code extension, unless front matter
// says otherwise. Other lesson files are Markdown.
var extLangs = map[string]string{".swift": PlaygroundLang}

// readLessons reads every lesson file directly under dir in fsys. Errors for
// individual files are collected and returned together.
func readLessons(fsys fs.FS, dir string) ([]lesson.Source, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var (
		srcs []lesson.Source
		errs []error
	)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		p := pathJoin(dir, name)
		stem, ext := splitExt(name)
		if !lessonExts[ext] {
			logger.Printf("skipping %s: %s is not a lesson extension", p, ext)
			continue
		}
		src, err := readLesson(fsys, p, stem)
		if err != nil {
			errs = append(errs, &Error{p, err})
			continue
		}
		if src.Meta.Lang == "" {
			src.Meta.Lang = extLangs[ext]
		}
		srcs = append(srcs, src)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return srcs, nil
}

// splitExt splits a file name into a lesson name and an extension. Unless it
// is a lesson extension, a dot after a numeric prefix ("1.Basic") or followed
// by a space ("03. Collection") separates the order from the title and is not
// an extension.
func splitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if lessonExts[ext] {
		return stem, ext
	}
	if strings.ContainsAny(ext, " \t") || isDigits(stem) {
		return name, ""
	}
	return stem, ext
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func readLesson(fsys fs.FS, p, name string) (lesson.Source, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return lesson.Source{}, err
	}
	meta, body, err := SplitFrontMatter(string(data))
	if err != nil {
		return lesson.Source{}, err
	}
	return lesson.Source{Name: name, Text: body, Meta: meta}, nil
}

// pathJoin joins slash-separated fs.FS paths.
func pathJoin(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}
