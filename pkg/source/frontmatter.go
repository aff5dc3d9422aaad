package source

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"src.lessondeck.sh/pkg/lesson"
)

// SplitFrontMatter splits YAML front matter off the start of a lesson file.
// Front matter is delimited by lines consisting of "---"; the closing line may
// also be "...". Text without front matter is returned unchanged with an empty
// Meta.
func SplitFrontMatter(text string) (lesson.Meta, string, error) {
	var meta lesson.Meta
	rest, ok := cutLine(text, "---")
	if !ok {
		return meta, text, nil
	}
	var yamlLines []string
	for {
		line, tail, more := nextLine(rest)
		if t := strings.TrimRight(line, " \t\r"); t == "---" || t == "..." {
			rest = tail
			break
		}
		if !more {
			return meta, text, errors.New("unterminated front matter")
		}
		yamlLines = append(yamlLines, strings.TrimSuffix(line, "\r"))
		rest = tail
	}
	if err := yaml.Unmarshal([]byte(strings.Join(yamlLines, "\n")), &meta); err != nil {
		return meta, text, fmt.Errorf("front matter: %w", err)
	}
	return meta, rest, nil
}

// cutLine removes the first line of text if it equals want, ignoring trailing
// spaces and a CR.
func cutLine(text, want string) (string, bool) {
	line, rest, _ := nextLine(text)
	if strings.TrimRight(line, " \t\r") != want {
		return text, false
	}
	return rest, true
}

// nextLine splits off the first line of text, without its newline. more is
// false if text had no newline.
func nextLine(text string) (line, rest string, more bool) {
	line, rest, more = strings.Cut(text, "\n")
	return line, rest, more
}
