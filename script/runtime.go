// Package script runs tengo scene scripts. A script may define
//
//	onEnter := func(nav) { ... }
//	onEvent := func(nav, name) { ... }
//
// and drives navigation through the functions of the nav map.
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/parser"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/d5/tengo/v2/token"
	"github.com/jakecoffman/cp"
)

const (
	HookEnter = "onEnter"
	HookEvent = "onEvent"
)

// Host is the scene a script acts on.
type Host interface {
	FindPath(from, to cp.Vector) []cp.Vector
	InLineOfSight(a, b cp.Vector) bool
	Block(name string) error
	Unblock(name string) error
	WalkTo(actor string, x, y float64) bool
	Position(actor string) (cp.Vector, bool)
}

// Runtime is one compiled scene script. Top level statements run again on
// every call; values that must survive between calls go in nav.state.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	hooks    map[string]bool
	state    *tengo.Map
	nav      *tengo.ImmutableMap
	out      io.Writer
}

type Option func(*Runtime)

// WithOutput redirects nav.log and error output. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.out = w
	}
}

// Compile parses src, appends a dispatcher for the hooks it defines and runs
// the top level once.
func Compile(name string, src []byte, host Host, opts ...Option) (*Runtime, error) {
	hooks, err := findHooks(name, src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}

	rt := &Runtime{
		name:  name,
		hooks: hooks,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.nav = buildNav(host, rt)

	script := tengo.NewScript([]byte(string(src) + "\n" + dispatcher(hooks)))
	_ = script.Add("__phase", "")
	_ = script.Add("__event", "")
	_ = script.Add("__nav", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	rt.compiled = compiled

	if err := rt.run("load", ""); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) Name() string {
	return rt.name
}

// Has reports whether the script defines hook.
func (rt *Runtime) Has(hook string) bool {
	return rt.hooks[hook]
}

// Enter runs onEnter. Scripts without it are left alone.
func (rt *Runtime) Enter() error {
	if !rt.hooks[HookEnter] {
		return nil
	}
	return rt.run("enter", "")
}

// Event runs onEvent with the event name.
func (rt *Runtime) Event(name string) error {
	if !rt.hooks[HookEvent] {
		return nil
	}
	return rt.run("event", name)
}

// State returns a copy of nav.state converted to Go values.
func (rt *Runtime) State() map[string]any {
	out := make(map[string]any, len(rt.state.Value))
	for k, v := range rt.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func (rt *Runtime) run(phase, event string) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := rt.compiled.Set("__nav", rt.nav); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s %s: %w", rt.name, phase, err)
	}
	return nil
}

func (rt *Runtime) logf(format string, args ...any) {
	fmt.Fprintf(rt.out, "script: %s: "+format+"\n", append([]any{rt.name}, args...)...)
}

// findHooks reports which hooks src defines at the top level.
func findHooks(name string, src []byte) (map[string]bool, error) {
	fileSet := parser.NewFileSet()
	srcFile := fileSet.AddFile(name, -1, len(src))
	file, err := parser.NewParser(srcFile, src, nil).ParseFile()
	if err != nil {
		return nil, err
	}

	hooks := map[string]bool{}
	for _, stmt := range file.Stmts {
		assign, ok := stmt.(*parser.AssignStmt)
		if !ok || assign.Token != token.Define {
			continue
		}
		for _, lhs := range assign.LHS {
			ident, ok := lhs.(*parser.Ident)
			if !ok {
				continue
			}
			if ident.Name == HookEnter || ident.Name == HookEvent {
				hooks[ident.Name] = true
			}
		}
	}
	return hooks, nil
}

func dispatcher(hooks map[string]bool) string {
	var sb strings.Builder
	if hooks[HookEnter] {
		sb.WriteString("if __phase == \"enter\" {\n\tonEnter(__nav)\n}\n")
	}
	if hooks[HookEvent] {
		sb.WriteString("if __phase == \"event\" {\n\tonEvent(__nav, __event)\n}\n")
	}
	return sb.String()
}
