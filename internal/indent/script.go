package indent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds a single call into the indentation script.
const DefaultScriptTimeout = 100 * time.Millisecond

// ErrNoIndentFunction is returned when a script does not define indent.
var ErrNoIndentFunction = errors.New("script does not define an indent function")

// ScriptCalculator computes indentation with a Lua function:
//
//	function indent(ctx)
//	  if ctx.text_before:match("then%s*$") then
//	    return ctx.indent .. ctx.unit
//	  end
//	  return ctx.indent
//	end
//
// ctx carries language, heuristic, line, position, line_text, text_before,
// text_after, indent, unit and tab_width. A non-string result, an error or
// a timeout yields "". Requests whose heuristic is not "script" go to the
// fallback calculator.
//
// gopher-lua states are not goroutine-safe; calls are serialized.
type ScriptCalculator struct {
	mu       sync.Mutex
	L        *lua.LState
	fallback Calculator
	timeout  time.Duration
	onError  func(error)
	closed   bool
}

// ScriptOption configures a ScriptCalculator.
type ScriptOption func(*ScriptCalculator)

// WithFallback sets the calculator used for non-script requests.
func WithFallback(c Calculator) ScriptOption {
	return func(s *ScriptCalculator) {
		s.fallback = c
	}
}

// WithScriptTimeout sets the per-call time limit.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *ScriptCalculator) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithErrorHandler is called with every script failure.
func WithErrorHandler(fn func(error)) ScriptOption {
	return func(s *ScriptCalculator) {
		s.onError = fn
	}
}

// NewScriptCalculator compiles source and checks that it defines indent.
func NewScriptCalculator(source string, opts ...ScriptOption) (*ScriptCalculator, error) {
	s := &ScriptCalculator{
		fallback: HeuristicCalculator{},
		timeout:  DefaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	L.SetContext(ctx)
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading indent script: %w", err)
	}
	L.RemoveContext()

	if fn := L.GetGlobal("indent"); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoIndentFunction
	}

	s.L = L
	return s, nil
}

// LoadScript reads a script file and compiles it.
func LoadScript(path string, opts ...ScriptOption) (*ScriptCalculator, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading indent script: %w", err)
	}
	return NewScriptCalculator(string(src), opts...)
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed, and the loaders in base are removed.
func openSafeLibraries(L *lua.LState) error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return fmt.Errorf("opening lua %s library: %w", lib.name, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

// Indent returns the script's indentation for req.
func (s *ScriptCalculator) Indent(req Request) string {
	if req.Heuristic != HeuristicScript {
		return s.fallback.Indent(req)
	}

	out, err := s.call(req)
	if err != nil {
		if s.onError != nil {
			s.onError(err)
		}
		return ""
	}
	return out
}

func (s *ScriptCalculator) call(req Request) (out string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errors.New("indent script is closed")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err = s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal("indent"),
		NRet:    1,
		Protect: true,
	}, s.context(req))
	if err != nil {
		return "", fmt.Errorf("indent script: %w", err)
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	str, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("indent script returned %s, want string", ret.Type())
	}
	return string(str), nil
}

func (s *ScriptCalculator) context(req Request) *lua.LTable {
	t := s.L.NewTable()
	t.RawSetString("language", lua.LString(req.Language))
	t.RawSetString("heuristic", lua.LString(req.Heuristic.String()))
	t.RawSetString("line", lua.LNumber(req.CurrentLine))
	t.RawSetString("position", lua.LNumber(req.Position))
	t.RawSetString("line_text", lua.LString(req.Text.LineText(req.LineToIndent)))
	t.RawSetString("text_before", lua.LString(req.before()))
	t.RawSetString("text_after", lua.LString(req.after()))
	t.RawSetString("indent", lua.LString(keepIndent(req)))
	t.RawSetString("unit", lua.LString(req.Style.Unit()))
	t.RawSetString("tab_width", lua.LNumber(req.TabWidth))
	return t
}

// Close releases the Lua state.
func (s *ScriptCalculator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}
