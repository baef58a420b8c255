package luaext

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/formbind/codec"
)

// Host wraps a gopher-lua state configured for codec extension scripts.
//
// gopher-lua's LState is not goroutine-safe; the host serializes all
// access, including the deferred calls into registered parse and
// serialize functions.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	codec  *codec.Codec
	closed bool
}

// NewHost creates a host whose scripts extend the given codec.
func NewHost(c *codec.Codec) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	h := &Host{L: L, codec: c}
	h.installModule()
	return h
}

// openSafeLibraries opens only the Lua libraries that cannot touch the
// filesystem or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Loading arbitrary code would bypass the restricted library set.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installModule publishes the formbind module into the interpreter.
func (h *Host) installModule() {
	mod := h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"register_type": h.luaRegisterType,
		"keywords":      h.luaKeywords,
	})
	h.L.SetGlobal("formbind", mod)
}

// DoString executes a script.
func (h *Host) DoString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.doWithRecovery(func() error {
		return h.L.DoString(code)
	})
}

// DoFile executes a script file.
func (h *Host) DoFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.doWithRecovery(func() error {
		return h.L.DoFile(path)
	})
}

func (h *Host) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the interpreter. Handlers registered by scripts stop
// working and report ErrHostClosed.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.L.Close()
	h.closed = true
	return nil
}

// luaRegisterType implements formbind.register_type(keyword, parse
// [, serialize]).
func (h *Host) luaRegisterType(L *lua.LState) int {
	keyword := L.CheckString(1)
	parseFn := L.CheckFunction(2)

	var serializeFn *lua.LFunction
	if L.GetTop() >= 3 {
		serializeFn = L.CheckFunction(3)
	}

	if keyword == "" {
		L.ArgError(1, "keyword must not be empty")
		return 0
	}

	handler := codec.Handler{
		Keyword: keyword,
		Parse:   h.parseFunc(keyword, parseFn),
	}
	if serializeFn != nil {
		handler.Serialize = h.serializeFunc(keyword, serializeFn)
	}
	h.codec.Register(handler)
	return 0
}

// luaKeywords implements formbind.keywords(), returning the codec's
// registered keywords as a table.
func (h *Host) luaKeywords(L *lua.LState) int {
	table := L.NewTable()
	for _, kw := range h.codec.Keywords() {
		table.Append(lua.LString(kw))
	}
	L.Push(table)
	return 1
}

// parseFunc adapts a Lua function into a codec.ParseFunc. The returned
// function is called from Go when the codec parses a tagged token.
func (h *Host) parseFunc(keyword string, fn *lua.LFunction) codec.ParseFunc {
	return func(payload string) (any, error) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.closed {
			return nil, ErrHostClosed
		}

		result, err := h.call(fn, lua.LString(payload))
		if err != nil {
			return nil, fmt.Errorf("lua parser for %q: %w", keyword, err)
		}
		value := fromLua(result)
		if value == nil {
			return nil, fmt.Errorf("lua parser for %q returned nil", keyword)
		}
		return value, nil
	}
}

// serializeFunc adapts a Lua function into a codec.SerializeFunc.
func (h *Host) serializeFunc(keyword string, fn *lua.LFunction) codec.SerializeFunc {
	return func(value any) (string, error) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.closed {
			return "", ErrHostClosed
		}

		result, err := h.call(fn, toLua(value))
		if err != nil {
			return "", fmt.Errorf("lua serializer for %q: %w", keyword, err)
		}
		s, ok := result.(lua.LString)
		if !ok {
			return "", fmt.Errorf("lua serializer for %q returned %s, want string", keyword, result.Type())
		}
		return string(s), nil
	}
}

// call invokes a Lua function with one argument and returns its first
// result. Callers must hold h.mu.
func (h *Host) call(fn *lua.LFunction, arg lua.LValue) (result lua.LValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	h.L.Push(fn)
	h.L.Push(arg)
	if err := h.L.PCall(1, 1, nil); err != nil {
		return nil, err
	}
	result = h.L.Get(-1)
	h.L.Pop(1)
	return result, nil
}

// fromLua converts a Lua scalar into a Go value. Tables and other
// non-scalar values convert to nil.
func fromLua(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LString:
		return string(lv)
	case lua.LNumber:
		return float64(lv)
	case lua.LBool:
		return bool(lv)
	default:
		return nil
	}
}

// toLua converts a Go value into a Lua scalar.
func toLua(v any) lua.LValue {
	switch gv := v.(type) {
	case string:
		return lua.LString(gv)
	case int:
		return lua.LNumber(gv)
	case int64:
		return lua.LNumber(gv)
	case float64:
		return lua.LNumber(gv)
	case bool:
		return lua.LBool(gv)
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
