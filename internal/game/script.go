package game

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// chapterDispatch is appended to every chapter script. Scripts define
// on_enter(ship) and update(ship, dt).
const chapterDispatch = `
if __phase == "enter" {
	on_enter(__ship)
} else if __phase == "update" {
	update(__ship, __dt)
}
`

// ChapterScript is a compiled tengo chapter hook.
type ChapterScript struct {
	Name     string
	compiled *tengo.Compiled
}

// CompileChapterScript compiles src against the simulation's script API.
func CompileChapterScript(name string, src []byte, s *Sim) (*ChapterScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + chapterDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__dt", 0.0)
	_ = script.Add("__ship", scriptAPI(s))
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile chapter script %s: %w", name, err)
	}
	return &ChapterScript{Name: name, compiled: compiled}, nil
}

// Enter runs the script's on_enter hook.
func (cs *ChapterScript) Enter() error { return cs.run("enter", 0) }

// Update runs the script's update hook.
func (cs *ChapterScript) Update(dt float64) error { return cs.run("update", dt) }

func (cs *ChapterScript) run(phase string, dt float64) error {
	if err := cs.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := cs.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := cs.compiled.Run(); err != nil {
		return fmt.Errorf("chapter script %s %s: %w", cs.Name, phase, err)
	}
	return nil
}

// scriptAPI exposes the ship to scripts as an immutable map of functions.
func scriptAPI(s *Sim) *tengo.ImmutableMap {
	kindArg := func(args []tengo.Object, i int) (world.SubsystemKind, bool) {
		if len(args) <= i {
			return world.SubsystemCount, false
		}
		key, _ := tengo.ToString(args[i])
		return world.ParseSubsystemKind(strings.TrimSpace(key))
	}
	floatArg := func(args []tengo.Object, i int) float64 {
		if len(args) <= i {
			return 0
		}
		f, _ := tengo.ToFloat64(args[i])
		return f
	}
	float := func(v float64) tengo.Object { return &tengo.Float{Value: v} }
	boolean := func(ok bool) tengo.Object {
		if ok {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}

	values := map[string]tengo.Object{}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		k, ok := kindArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.Ship.Damage(k, floatArg(args, 1))
		return tengo.TrueValue, nil
	}}

	values["repair"] = &tengo.UserFunction{Name: "repair", Value: func(args ...tengo.Object) (tengo.Object, error) {
		k, ok := kindArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.Ship.Repair(k, floatArg(args, 1))
		return tengo.TrueValue, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		k, ok := kindArg(args, 0)
		if !ok {
			return float(0), nil
		}
		return float(s.Ship.Get(k).Health()), nil
	}}

	values["oxygen"] = &tengo.UserFunction{Name: "oxygen", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(s.Ledger.Oxygen), nil
	}}

	values["fuel"] = &tengo.UserFunction{Name: "fuel", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(s.Ledger.Fuel), nil
	}}

	values["distance"] = &tengo.UserFunction{Name: "distance", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(s.Ledger.Distance), nil
	}}

	values["crew"] = &tengo.UserFunction{Name: "crew", Value: func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.Crew.Alive())}, nil
	}}

	values["incident"] = &tengo.UserFunction{Name: "incident", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		key, _ := tengo.ToString(args[0])
		kind, ok := ParseIncidentKind(strings.TrimSpace(key))
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolean(s.Scheduler.Begin(kind) == nil), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			str, _ := tengo.ToString(a)
			parts = append(parts, str)
		}
		s.Log.Add(strings.Join(parts, " "), MsgSocial)
		return tengo.UndefinedValue, nil
	}}

	values["advance"] = &tengo.UserFunction{Name: "advance", Value: func(...tengo.Object) (tengo.Object, error) {
		return boolean(s.Chapters.requestNext()), nil
	}}

	// Top-level script state is rebuilt on every run; marks survive.
	marks := map[string]bool{}
	values["mark"] = &tengo.UserFunction{Name: "mark", Value: func(args ...tengo.Object) (tengo.Object, error) {
		for _, a := range args {
			key, _ := tengo.ToString(a)
			marks[key] = true
		}
		return tengo.UndefinedValue, nil
	}}

	values["marked"] = &tengo.UserFunction{Name: "marked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		key, _ := tengo.ToString(args[0])
		return boolean(marks[key]), nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(...tengo.Object) (tengo.Object, error) {
		return float(s.Elapsed), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
