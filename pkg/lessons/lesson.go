// Package lessons contains the prototype tutorial. Each lesson drives a
// fresh object model and prints through its console; every lesson also
// carries the JavaScript it mirrors.
package lessons

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"protochain/pkg/vm"
)

//go:embed js/*.js
var scripts embed.FS

var ErrUnknownLesson = errors.New("unknown lesson")

type Lesson struct {
	ID      string
	Title   string
	Summary string

	run func(s *Session)
}

var catalog = []*Lesson{
	{
		ID:      "constructors",
		Title:   "Constructors",
		Summary: "Constructor functions, instanceof, the constructor property and per-instance methods.",
		run:     runConstructors,
	},
	{
		ID:      "prototypes",
		Title:   "Prototypes",
		Summary: "Own versus inherited properties, getPrototypeOf, isPrototypeOf and shadowing.",
		run:     runPrototypes,
	},
	{
		ID:      "prototypes-with-constructors",
		Title:   "Using Prototypes with Constructors",
		Summary: "Shared prototype methods, shared reference values and replacing a prototype with a literal.",
		run:     runPrototypesWithConstructors,
	},
	{
		ID:      "changing-prototypes",
		Title:   "Changing Prototypes",
		Summary: "Prototype additions reach existing instances, frozen ones included.",
		run:     runChangingPrototypes,
	},
	{
		ID:      "builtins",
		Title:   "Built-in Objects",
		Summary: "Extending Array.prototype and String.prototype.",
		run:     runBuiltins,
	},
}

// Catalog returns every lesson in tutorial order.
func Catalog() []*Lesson {
	out := make([]*Lesson, len(catalog))
	copy(out, catalog)
	return out
}

// Find returns the lesson with the given ID.
func Find(id string) (*Lesson, bool) {
	for _, l := range catalog {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Script returns the JavaScript the lesson mirrors.
func (l *Lesson) Script() string {
	data, err := scripts.ReadFile("js/" + l.ID + ".js")
	if err != nil {
		return ""
	}
	return string(data)
}

// Run executes the lesson on a fresh model, printing to w.
func (l *Lesson) Run(w io.Writer, opts ...vm.Option) error {
	s, err := NewSession(w, opts...)
	if err != nil {
		return err
	}
	s.Model.Logger().Debug("lesson started", zap.String("id", l.ID), zap.Int("max_chain_depth", s.Model.MaxChainDepth()))
	l.run(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("lesson %s: %w", l.ID, err)
	}
	return nil
}

// Output runs the lesson and returns the printed lines.
func (l *Lesson) Output(opts ...vm.Option) ([]string, error) {
	var buf bytes.Buffer
	err := l.Run(&buf, opts...)
	return splitLines(buf.String()), err
}

// Select narrows lessons to the enabled IDs (all when empty) whose ID or
// title matches pattern, an ECMAScript regular expression. An empty pattern
// matches everything.
func Select(lessons []*Lesson, enabled []string, pattern string) ([]*Lesson, error) {
	known := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		known[l.ID] = true
	}
	on := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLesson, id)
		}
		on[id] = true
	}

	var re *regexp2.Regexp
	if pattern != "" {
		var err error
		re, err = regexp2.Compile(pattern, regexp2.ECMAScript)
		if err != nil {
			return nil, fmt.Errorf("invalid lesson pattern %q: %w", pattern, err)
		}
	}

	var out []*Lesson
	for _, l := range lessons {
		if len(on) > 0 && !on[l.ID] {
			continue
		}
		if re != nil {
			idMatch, err := re.MatchString(l.ID)
			if err != nil {
				return nil, err
			}
			titleMatch, err := re.MatchString(l.Title)
			if err != nil {
				return nil, err
			}
			if !idMatch && !titleMatch {
				continue
			}
		}
		out = append(out, l)
	}
	return out, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
