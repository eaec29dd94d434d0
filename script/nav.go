package script

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
)

func buildNav(host Host, rt *Runtime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["state"] = rt.state

	values["path"] = &tengo.UserFunction{Name: "path", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pts, ok := floats(args, 4)
		if !ok || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		path := host.FindPath(cp.Vector{X: pts[0], Y: pts[1]}, cp.Vector{X: pts[2], Y: pts[3]})
		out := make([]tengo.Object, 0, len(path))
		for _, p := range path {
			out = append(out, point(p))
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["visible"] = &tengo.UserFunction{Name: "visible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pts, ok := floats(args, 4)
		if !ok || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		return boolObject(host.InLineOfSight(cp.Vector{X: pts[0], Y: pts[1]}, cp.Vector{X: pts[2], Y: pts[3]})), nil
	}}

	values["walk"] = &tengo.UserFunction{Name: "walk", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		pts, ok := floats(args[1:], 2)
		if !ok {
			return tengo.UndefinedValue, tengo.ErrInvalidArgumentType{Name: "x, y", Expected: "float", Found: args[1].TypeName()}
		}
		return boolObject(host.WalkTo(objectAsString(args[0]), pts[0], pts[1])), nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		p, ok := host.Position(objectAsString(args[0]))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return point(p), nil
	}}

	values["block"] = &tengo.UserFunction{Name: "block", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		if err := host.Block(objectAsString(args[0])); err != nil {
			rt.logf("block: %v", err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["unblock"] = &tengo.UserFunction{Name: "unblock", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 || host == nil {
			return tengo.UndefinedValue, tengo.ErrWrongNumArguments
		}
		if err := host.Unblock(objectAsString(args[0])); err != nil {
			rt.logf("unblock: %v", err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		rt.logf("%s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func floats(args []tengo.Object, n int) ([]float64, bool) {
	if len(args) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func point(p cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
