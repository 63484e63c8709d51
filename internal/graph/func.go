package graph

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

// Func is the canonical shape of a node computation: positional arguments
// resolved from the positional parents, keyword arguments resolved from the
// keyword parents.
type Func func(args []any, kwargs map[string]any) (any, error)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// normalize turns an arbitrary fn into a Func. Non-function values become a
// constant provider (reported through the second return), and plain Go
// functions are adapted with a reflective caller that maps positional
// parents to the leading parameters and keyword parents, in kworder, to the
// remaining ones.
func normalize(fn any, kworder []string) (Func, bool) {
	switch f := fn.(type) {
	case Func:
		return f, false
	case func(args []any, kwargs map[string]any) (any, error):
		return f, false
	}
	v := reflect.ValueOf(fn)
	if fn == nil || v.Kind() != reflect.Func {
		return func([]any, map[string]any) (any, error) { return fn, nil }, true
	}
	return reflectCaller(v, kworder), false
}

// reflectCaller adapts an arbitrary Go function. The last return value may
// be an error; at most two return values are supported.
func reflectCaller(fv reflect.Value, kworder []string) Func {
	ft := fv.Type()
	return func(args []any, kwargs map[string]any) (any, error) {
		ordered := make([]any, 0, len(args)+len(kworder))
		ordered = append(ordered, args...)
		for _, key := range kworder {
			ordered = append(ordered, kwargs[key])
		}

		if ft.IsVariadic() {
			if len(ordered) < ft.NumIn()-1 {
				return nil, fmt.Errorf("graph: %s expects at least %d arguments, got %d",
					funcName(fv.Interface()), ft.NumIn()-1, len(ordered))
			}
		} else if len(ordered) != ft.NumIn() {
			return nil, fmt.Errorf("graph: %s expects %d arguments, got %d",
				funcName(fv.Interface()), ft.NumIn(), len(ordered))
		}

		in := make([]reflect.Value, len(ordered))
		for i, arg := range ordered {
			pt := paramType(ft, i)
			av, err := argValue(arg, pt)
			if err != nil {
				return nil, fmt.Errorf("graph: argument %d of %s: %w", i, funcName(fv.Interface()), err)
			}
			in[i] = av
		}

		out := fv.Call(in)
		switch len(out) {
		case 0:
			return nil, nil
		case 1:
			if ft.Out(0) == errType {
				return nil, asError(out[0])
			}
			return out[0].Interface(), nil
		case 2:
			if ft.Out(1) != errType {
				return nil, fmt.Errorf("graph: %s: second return value must be an error", funcName(fv.Interface()))
			}
			return out[0].Interface(), asError(out[1])
		default:
			return nil, fmt.Errorf("graph: %s returns %d values, want at most 2", funcName(fv.Interface()), len(out))
		}
	}
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	if av.Type().ConvertibleTo(pt) {
		return av.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, pt)
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

// funcName extracts a short display name for a function value, e.g.
// "Histogram" for a named function or "func1" for a closure.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", fn)
	}
	pc := v.Pointer()
	full := runtimeFuncName(pc)
	if full == "" {
		return "func"
	}
	base := path.Base(full)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, "-fm")
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	return base
}

func runtimeFuncName(pc uintptr) string {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	return f.Name()
}
