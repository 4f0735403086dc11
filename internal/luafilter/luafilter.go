// Package luafilter evaluates small Lua predicates inside a restricted
// interpreter. Only the base, string, table and math libraries are opened
// and every evaluation runs under a deadline.
package luafilter

import (
	"context"
	"strings"
	"time"

	perrors "github.com/jmgilman/go/errors"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

const (
	defaultTimeout  = 200 * time.Millisecond
	registrySize    = 256
	registryMaxSize = 4096
)

// Filter is a compiled predicate. A Filter is safe for concurrent use; each
// evaluation gets its own interpreter.
type Filter struct {
	source  string
	proto   *lua.FunctionProto
	timeout time.Duration
}

// Option configures a Filter.
type Option func(*Filter)

// WithTimeout bounds a single evaluation. Zero or negative disables the
// deadline.
func WithTimeout(d time.Duration) Option {
	return func(f *Filter) { f.timeout = d }
}

// Compile parses code. An expression is evaluated as "return (code)";
// anything that does not parse as an expression is compiled as a chunk and
// must return its own result. Empty code compiles to a filter that accepts
// everything.
func Compile(code string, opts ...Option) (*Filter, error) {
	src, proto, err := compileFilter(strings.TrimSpace(code))
	if err != nil {
		return nil, perrors.Wrap(err, perrors.CodeInvalidInput, "invalid filter")
	}
	f := &Filter{source: src, proto: proto, timeout: defaultTimeout}
	for _, o := range opts {
		o(f)
	}
	return f, nil
}

// Source returns the Lua chunk that is evaluated.
func (f *Filter) Source() string { return f.source }

// Match evaluates the predicate with globals bound. Results other than a
// boolean true count as false.
func (f *Filter) Match(ctx context.Context, globals map[string]any) (bool, error) {
	L := newSandboxState()
	defer L.Close()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	L.SetContext(ctx)

	for k, v := range globals {
		L.SetGlobal(k, toLValue(L, v))
	}
	L.Push(L.NewFunctionFromProto(f.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return false, perrors.Wrap(err, perrors.CodeTimeout, "filter timed out")
		}
		if strings.Contains(strings.ToLower(err.Error()), "registry overflow") {
			return false, perrors.Wrap(err, perrors.CodeExecutionFailed, "filter exceeded memory limit")
		}
		return false, perrors.Wrap(err, perrors.CodeExecutionFailed, "filter failed")
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret == lua.LTrue, nil
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     registrySize,
		RegistryMaxSize:  registryMaxSize,
		RegistryGrowStep: 32,
	})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// Loading code from inside the predicate is not allowed.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func compileFilter(code string) (string, *lua.FunctionProto, error) {
	if code == "" {
		code = "true"
	}
	wrapped := "return (" + code + ")"
	if proto, err := compileChunk(wrapped); err == nil {
		return wrapped, proto, nil
	}
	proto, err := compileChunk(code)
	if err != nil {
		return "", nil, err
	}
	return code, proto, nil
}

func compileChunk(src string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(strings.NewReader(src), "<filter>")
	if err != nil {
		return nil, err
	}
	return lua.Compile(chunk, "<filter>")
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if err == context.DeadlineExceeded {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}

// toLValue converts a Go value to a Lua value.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(float64(x))
	case int64:
		return lua.LNumber(float64(x))
	case float64:
		return lua.LNumber(x)
	case map[string]any:
		tbl := L.NewTable()
		for k, v2 := range x {
			tbl.RawSetString(k, toLValue(L, v2))
		}
		return tbl
	case []any:
		tbl := L.NewTable()
		for i, v2 := range x {
			tbl.RawSetInt(i+1, toLValue(L, v2))
		}
		return tbl
	default:
		return lua.LNil
	}
}
