package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"protochain/pkg/builtins"
	"protochain/pkg/config"
	perrors "protochain/pkg/errors"
	"protochain/pkg/lessons"
	"protochain/pkg/vm"
)

func main() {
	os.Exit(exitCode(runCLI(os.Args, os.Stdout, os.Stderr), os.Stderr))
}

// usageError marks a command line mistake; it exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, "protochain:", err)
		printUsage(stderr)
		return 2
	}
	perrors.DisplayErrors(stderr, []error{err})
	return 1
}

func runCLI(args []string, stdout, stderr io.Writer) error {
	if len(args) < 2 {
		return &usageError{msg: "missing command"}
	}
	switch args[1] {
	case "list":
		return listCommand(args[2:], stdout, stderr)
	case "run":
		return runCommand(args[2:], stdout, stderr)
	case "browse":
		return browseCommand(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		return &usageError{msg: fmt.Sprintf("unknown command %q", args[1])}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: protochain <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [-builtins]     list lessons and whether they are enabled, or the built-in constructors")
	fmt.Fprintln(w, "  run [flags] [id...]  run lessons")
	fmt.Fprintln(w, "  browse [flags]       browse lessons interactively")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config string")
	fmt.Fprintln(w, "    configuration file (default \"protochain.yaml\" when present)")
	fmt.Fprintln(w, "  -run string")
	fmt.Fprintln(w, "    only lessons whose ID or title match this ECMAScript regular expression")
	fmt.Fprintln(w, "  -oracle")
	fmt.Fprintln(w, "    cross-check every lesson against a JavaScript engine (run only)")
}

// env is the state shared by every command once flags and config are read.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	styles styles
	stdout io.Writer
}

func (e *env) modelOptions() []vm.Option {
	return []vm.Option{
		vm.WithMaxChainDepth(e.cfg.MaxChainDepth),
		vm.WithLogger(e.logger),
	}
}

// selectLessons applies the config, the -run pattern and explicit IDs.
func (e *env) selectLessons(pattern string, ids []string) ([]*lessons.Lesson, error) {
	selected, err := lessons.Select(lessons.Catalog(), e.cfg.Lessons, pattern)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return selected, nil
	}
	var out []*lessons.Lesson
	for _, id := range ids {
		if _, ok := lessons.Find(id); !ok {
			return nil, fmt.Errorf("%w: %s", lessons.ErrUnknownLesson, id)
		}
		for _, l := range selected {
			if l.ID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "configuration file")
	return fs, configPath
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: fmt.Sprintf("%s: %v", fs.Name(), err)}
	}
	return nil
}

func loadEnv(configPath string, stdout, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(stderr)
	logger.Debug("configuration loaded", zap.Strings("lessons", cfg.Lessons), zap.Int("max_chain_depth", cfg.MaxChainDepth))
	return &env{
		cfg:    cfg,
		logger: logger,
		styles: newStyles(stdout, cfg.Color),
		stdout: stdout,
	}, nil
}

func listCommand(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("list")
	showBuiltins := fs.Bool("builtins", false, "list the built-in constructors instead of lessons")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath, stdout, stderr)
	if err != nil {
		return err
	}
	if *showBuiltins {
		return e.listBuiltins()
	}
	if _, err := lessons.Select(lessons.Catalog(), e.cfg.Lessons, ""); err != nil {
		return err
	}

	fmt.Fprintln(stdout, e.styles.header.Render("protochain lessons"))
	for _, l := range lessons.Catalog() {
		mark := e.styles.muted.Render("[ ]")
		if e.cfg.Enabled(l.ID) {
			mark = e.styles.enabled.Render("[x]")
		}
		fmt.Fprintf(stdout, "%s %-30s %s\n", mark, l.ID, l.Title)
		fmt.Fprintf(stdout, "    %s\n", e.styles.muted.Render(l.Summary))
	}
	return nil
}

// listBuiltins prints each registered constructor with the methods its
// prototype defines.
func (e *env) listBuiltins() error {
	m, err := builtins.NewModel(e.modelOptions()...)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, e.styles.header.Render("protochain built-in constructors"))
	for _, c := range m.Constructors() {
		proto, err := m.Prototype(c.ID)
		if err != nil {
			return err
		}
		var methods []string
		for _, k := range m.OwnKeys(proto) {
			if k != "constructor" {
				methods = append(methods, k)
			}
		}
		fmt.Fprintf(e.stdout, "%-10s %s\n", c.Name, e.styles.muted.Render(strings.Join(methods, " ")))
	}
	return nil
}

func runCommand(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("run")
	pattern := fs.String("run", "", "lesson pattern")
	oracle := fs.Bool("oracle", false, "cross-check against a JavaScript engine")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath, stdout, stderr)
	if err != nil {
		return err
	}
	selected, err := e.selectLessons(*pattern, fs.Args())
	if err != nil {
		return err
	}
	return e.runLessons(selected, *oracle)
}

func (e *env) runLessons(selected []*lessons.Lesson, oracle bool) error {
	if len(selected) == 0 {
		return errors.New("no lessons selected")
	}
	disagree := 0
	for i, l := range selected {
		if i > 0 {
			fmt.Fprintln(e.stdout)
		}
		fmt.Fprintln(e.stdout, e.styles.header.Render(fmt.Sprintf("== %s (%s) ==", l.Title, l.ID)))
		if err := l.Run(e.stdout, e.modelOptions()...); err != nil {
			return err
		}
		if !oracle {
			continue
		}
		mismatches, err := l.Verify(e.modelOptions()...)
		if err != nil {
			return err
		}
		if len(mismatches) == 0 {
			fmt.Fprintln(e.stdout, e.styles.ok.Render("matches JavaScript"))
			continue
		}
		disagree++
		for _, mm := range mismatches {
			fmt.Fprintln(e.stdout, e.styles.err.Render(fmt.Sprintf("line %d: model %q, javascript %q", mm.Line, mm.Model, mm.JS)))
		}
	}
	if disagree > 0 {
		return fmt.Errorf("%d lesson(s) disagree with JavaScript", disagree)
	}
	return nil
}

func browseCommand(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("browse")
	pattern := fs.String("run", "", "lesson pattern")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath, stdout, stderr)
	if err != nil {
		return err
	}
	selected, err := e.selectLessons(*pattern, fs.Args())
	if err != nil {
		return err
	}
	if !isTerminal(stdout) {
		e.logger.Debug("stdout is not a terminal, running lessons instead")
		return e.runLessons(selected, false)
	}
	if len(selected) == 0 {
		return errors.New("no lessons selected")
	}
	return browse(selected, e.modelOptions())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
