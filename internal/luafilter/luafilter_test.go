package luafilter

import (
	"context"
	"sync"
	"testing"
	"time"

	perrors "github.com/jmgilman/go/errors"
)

func TestMatch_Expression(t *testing.T) {
	f, err := Compile(`event == "write"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if f.Source() != `return (event == "write")` {
		t.Fatalf("unexpected source: %q", f.Source())
	}
	cases := map[string]bool{"write": true, "create": false, "remove": false}
	for ev, want := range cases {
		got, err := f.Match(context.Background(), map[string]any{"event": ev, "name": "a.txt"})
		if err != nil {
			t.Fatalf("%s: %v", ev, err)
		}
		if got != want {
			t.Fatalf("%s: got %v want %v", ev, got, want)
		}
	}
}

func TestMatch_ExplicitReturnAndStringLib(t *testing.T) {
	f, err := Compile(`local ext = string.match(name, "%.(%w+)$")
return ext == "txt"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := f.Match(context.Background(), map[string]any{"name": "notes.txt"})
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = f.Match(context.Background(), map[string]any{"name": "notes.md"})
	if err != nil || ok {
		t.Fatalf("expected no match, got %v %v", ok, err)
	}
}

func TestMatch_ReturnInsideStringLiteral(t *testing.T) {
	cases := []struct {
		code  string
		match string
		miss  string
	}{
		{`name == "return.txt"`, "return.txt", "other.txt"},
		{`string.find(name, "returned") ~= nil`, "returned.log", "kept.log"},
		{`name ~= "returns" and event == "write"`, "a.txt", "returns"},
	}
	for _, c := range cases {
		f, err := Compile(c.code)
		if err != nil {
			t.Fatalf("%s: compile: %v", c.code, err)
		}
		if f.Source() != "return ("+c.code+")" {
			t.Fatalf("%s: expression not wrapped: %q", c.code, f.Source())
		}
		ok, err := f.Match(context.Background(), map[string]any{"event": "write", "name": c.match})
		if err != nil || !ok {
			t.Fatalf("%s: expected match on %q, got %v %v", c.code, c.match, ok, err)
		}
		ok, err = f.Match(context.Background(), map[string]any{"event": "write", "name": c.miss})
		if err != nil || ok {
			t.Fatalf("%s: expected no match on %q, got %v %v", c.code, c.miss, ok, err)
		}
	}
}

func TestCompile_ChunkKeepsOwnReturn(t *testing.T) {
	code := `if event == "remove" then return false end
return true`
	f, err := Compile(code)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if f.Source() != code {
		t.Fatalf("chunk must not be wrapped: %q", f.Source())
	}
	ok, err := f.Match(context.Background(), map[string]any{"event": "remove"})
	if err != nil || ok {
		t.Fatalf("expected no match, got %v %v", ok, err)
	}
}

func TestCompile_EmptyAcceptsAll(t *testing.T) {
	f, err := Compile("  ")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := f.Match(context.Background(), nil)
	if err != nil || !ok {
		t.Fatalf("expected accept, got %v %v", ok, err)
	}
}

func TestMatch_NonBooleanIsFalse(t *testing.T) {
	f, err := Compile(`"yes"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := f.Match(context.Background(), nil)
	if err != nil || ok {
		t.Fatalf("expected false, got %v %v", ok, err)
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := Compile(`event ==`)
	if perrors.GetCode(err) != perrors.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMatch_RuntimeError(t *testing.T) {
	f, err := Compile(`return missing.field == 1`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = f.Match(context.Background(), nil)
	if perrors.GetCode(err) != perrors.CodeExecutionFailed {
		t.Fatalf("expected execution failure, got %v", err)
	}
}

func TestMatch_Timeout(t *testing.T) {
	f, err := Compile(`while true do end return true`, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = f.Match(context.Background(), nil)
	if perrors.GetCode(err) != perrors.CodeTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestMatch_SandboxHidesLoaders(t *testing.T) {
	f, err := Compile(`return require == nil and dofile == nil and os == nil and io == nil`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok, err := f.Match(context.Background(), nil)
	if err != nil || !ok {
		t.Fatalf("expected restricted globals, got %v %v", ok, err)
	}
}

func TestMatch_ConcurrentUse(t *testing.T) {
	f, err := Compile(`name == "a"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.Match(context.Background(), map[string]any{"name": "a"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent match: %v", err)
	}
}
