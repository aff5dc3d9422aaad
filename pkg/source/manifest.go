package source

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"src.lessondeck.sh/pkg/lesson"
)

// Manifest is a deck described by a TOML file that lists its pages
// explicitly:
//
//	title = "Swift Programming Book"
//	lang = "swift"
//
//	[[page]]
//	file = "Pages/1.Basic.xcplaygroundpage/Contents.swift"
//	title = "The Basics"
//
// Pages are ordered by their position in the manifest unless they set
// "order". Paths are relative to the directory of the manifest. Values in the
// manifest override front matter in the page files.
type Manifest struct {
	Path string
}

type manifestConf struct {
	Title string
	Lang  string
	Pages []pageConf `toml:"page"`
}

type pageConf struct {
	File  string
	Name  string
	ID    string
	Title string
	Lang  string
	Order *int
}

func (m Manifest) decode() (*manifestConf, error) {
	var conf manifestConf
	md, err := toml.DecodeFile(m.Path, &conf)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Printf("%s: ignoring unknown keys %v", m.Path, undecoded)
	}
	return &conf, nil
}

func (m Manifest) Sources() ([]lesson.Source, error) {
	conf, err := m.decode()
	if err != nil {
		return nil, err
	}
	if len(conf.Pages) == 0 {
		return nil, fmt.Errorf("%s: no pages", m.Path)
	}
	base := filepath.Dir(m.Path)
	fsys := os.DirFS(base)
	var (
		srcs []lesson.Source
		errs []error
	)
	for i, page := range conf.Pages {
		if page.File == "" {
			errs = append(errs, fmt.Errorf("%s: page %d has no file", m.Path, i+1))
			continue
		}
		file := filepath.ToSlash(filepath.Clean(page.File))
		name := page.Name
		if name == "" {
			name = nameFromFile(file)
		}
		src, err := readLesson(fsys, file, name)
		if err != nil {
			errs = append(errs, &Error{filepath.Join(base, page.File), err})
			continue
		}
		order := i + 1
		if page.Order != nil {
			order = *page.Order
		}
		src.Meta.Order = &order
		overlay(&src.Meta.ID, page.ID)
		overlay(&src.Meta.Title, page.Title)
		overlay(&src.Meta.Lang, page.Lang)
		fallback(&src.Meta.Lang, conf.Lang)
		fallback(&src.Meta.Lang, extLangs[path.Ext(file)])
		srcs = append(srcs, src)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return srcs, nil
}

func (m Manifest) Title() string {
	if conf, err := m.decode(); err == nil && conf.Title != "" {
		return conf.Title
	}
	return filepath.Base(filepath.Dir(m.Path))
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fallback(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// nameFromFile derives a lesson name from a file path. A playground page's
// Contents.swift is named after its page directory.
func nameFromFile(file string) string {
	dir, base := filepath.Split(filepath.FromSlash(file))
	if base == contentsFile && strings.HasSuffix(filepath.Base(dir), pageExt) {
		return strings.TrimSuffix(filepath.Base(dir), pageExt)
	}
	stem, _ := splitExt(base)
	return stem
}
