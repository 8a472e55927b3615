package builtins

import (
	"fmt"
	"strings"
	"sync"

	"protochain/pkg/vm"
)

type ConsoleInitializer struct{}

func (c *ConsoleInitializer) Name() string {
	return "console"
}

func (c *ConsoleInitializer) Priority() int {
	return PriorityConsole
}

// consoleState holds the per-model group depth and counters.
type consoleState struct {
	mu         sync.Mutex
	groupLevel int
	counters   map[string]int
}

func (c *ConsoleInitializer) InitRuntime(ctx *RuntimeContext) error {
	m := ctx.Model
	state := &consoleState{counters: make(map[string]int)}
	console := m.NewObject()

	printer := func(prefix string) vm.NativeFn {
		return func(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
			state.print(m, args, prefix)
			return vm.Undefined, nil
		}
	}
	method(m, console, "log", 0, printer(""))
	method(m, console, "info", 0, printer(""))
	method(m, console, "debug", 0, printer("DEBUG: "))
	method(m, console, "warn", 0, printer("WARN: "))
	method(m, console, "error", 0, printer("ERROR: "))
	method(m, console, "group", 0, func(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		if len(args) > 0 {
			state.print(m, args, "")
		}
		state.mu.Lock()
		state.groupLevel++
		state.mu.Unlock()
		return vm.Undefined, nil
	})
	method(m, console, "groupEnd", 0, func(*vm.Model, vm.Value, []vm.Value) (vm.Value, error) {
		state.mu.Lock()
		if state.groupLevel > 0 {
			state.groupLevel--
		}
		state.mu.Unlock()
		return vm.Undefined, nil
	})
	method(m, console, "count", 0, func(m *vm.Model, _ vm.Value, args []vm.Value) (vm.Value, error) {
		label := "default"
		if len(args) > 0 {
			label = args[0].ToString()
		}
		state.mu.Lock()
		state.counters[label]++
		n := state.counters[label]
		state.mu.Unlock()
		state.print(m, []vm.Value{vm.NewString(fmt.Sprintf("%s: %d", label, n))}, "")
		return vm.Undefined, nil
	})

	return ctx.DefineGlobal("console", vm.NewValueFromPlainObject(console))
}

// FormatArgs joins console arguments the way console.log prints them:
// top-level strings verbatim, everything else inspected.
func FormatArgs(args []vm.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	return strings.Join(parts, " ")
}

func (s *consoleState) print(m *vm.Model, args []vm.Value, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	indent := strings.Repeat("  ", s.groupLevel)
	fmt.Fprintln(m.Output(), indent+prefix+FormatArgs(args))
}
