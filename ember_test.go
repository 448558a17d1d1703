package ember_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ember"
	"ember/internal/config"
)

// run executes source on a fresh VM and returns what it printed.
func run(t *testing.T, source string) (string, ember.Result) {
	t.Helper()
	var out bytes.Buffer
	res, bag, err := ember.Interpret(source, &out)
	require.NoError(t, err, "Interpret itself should never return a Go error for these programs")
	if res == ember.CompileError {
		t.Fatalf("unexpected compile error: %v", bag)
	}
	return out.String(), res
}

func TestEndToEndArithmeticPrecedence(t *testing.T) {
	out, res := run(t, `print 1 + 2 * 3;`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "7\n", out)
}

func TestEndToEndStringConcatenation(t *testing.T) {
	out, res := run(t, `var a = "hi"; var b = "!"; print a + b;`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "hi!\n", out)
}

func TestEndToEndClosureCounter(t *testing.T) {
	out, res := run(t, `
		fun makeCounter() {
			var i = 0;
			fun c() { i = i + 1; return i; }
			return c;
		}
		var c = makeCounter();
		print c();
		print c();
		print c();
	`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestEndToEndInheritanceAndSuper(t *testing.T) {
	out, res := run(t, `
		class A { greet() { return "hi"; } }
		class B < A { greet() { return super.greet() + "!"; } }
		print B().greet();
	`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "hi!\n", out)
}

func TestEndToEndInitializerAndFields(t *testing.T) {
	out, res := run(t, `
		class P { init(x) { this.x = x; } }
		var p = P(42);
		print p.x;
	`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "42\n", out)
}

func TestEndToEndForLoopWithContinue(t *testing.T) {
	out, res := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			if (i == 1) continue;
			print i;
		}
	`)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "0\n2\n", out)
}

func TestRuntimeErrorMixedAddOperands(t *testing.T) {
	var out bytes.Buffer
	res, _, err := ember.Interpret(`print 1 + "a";`, &out)
	require.Equal(t, ember.RuntimeError, res)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestRuntimeErrorCallingNonCallable(t *testing.T) {
	var out bytes.Buffer
	res, _, err := ember.Interpret(`var x; x();`, &out)
	require.Equal(t, ember.RuntimeError, res)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestRuntimeErrorUndefinedProperty(t *testing.T) {
	var out bytes.Buffer
	res, _, err := ember.Interpret(`class C {} print C().nope;`, &out)
	require.Equal(t, ember.RuntimeError, res)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined property 'nope'.")
}

func TestCompileErrorSelfInheritance(t *testing.T) {
	var out bytes.Buffer
	res, bag, err := ember.Interpret(`class A < A {}`, &out)
	require.NoError(t, err)
	require.Equal(t, ember.CompileError, res)
	require.True(t, bag.HasErrors())
}

func TestCompileErrorInvalidAssignmentTarget(t *testing.T) {
	var out bytes.Buffer
	res, bag, err := ember.Interpret(`1 = 2;`, &out)
	require.NoError(t, err)
	require.Equal(t, ember.CompileError, res)
	require.True(t, bag.HasErrors())
}

func TestCompileErrorContinueOutsideLoop(t *testing.T) {
	var out bytes.Buffer
	res, bag, err := ember.Interpret(`continue;`, &out)
	require.NoError(t, err)
	require.Equal(t, ember.CompileError, res)
	require.True(t, bag.HasErrors())
}

func TestCompileErrorTooManySwitchCases(t *testing.T) {
	var src strings.Builder
	src.WriteString("switch (0) {\n")
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&src, "case %d: 0;\n", i)
	}
	src.WriteString("}\n")

	var out bytes.Buffer
	res, bag, err := ember.Interpret(src.String(), &out)
	require.NoError(t, err)
	require.Equal(t, ember.CompileError, res)
	require.True(t, bag.HasErrors())
}

// TestDeterministicOutput checks spec.md §8's determinism property:
// interpreting the same source twice on independent VMs yields the same
// output and status (clock() aside).
func TestDeterministicOutput(t *testing.T) {
	const src = `
		class Tree {
			init(v) { this.v = v; this.l = nil; this.r = nil; }
		}
		fun sum(t) {
			if (t == nil) return 0;
			return t.v + sum(t.l) + sum(t.r);
		}
		var root = Tree(1);
		root.l = Tree(2);
		root.r = Tree(3);
		print sum(root);
	`
	out1, res1 := run(t, src)
	out2, res2 := run(t, src)
	require.Equal(t, out1, out2)
	require.Equal(t, res1, res2)
}

func TestInterpretOnExplicitVM(t *testing.T) {
	var out bytes.Buffer
	v := ember.NewVM(config.Default(), &out)
	defer v.Close()

	res, _, err := v.Interpret(`fun f() { return 1; } print f();`)
	require.NoError(t, err)
	require.Equal(t, ember.Ok, res)
	require.Equal(t, "1\n", out.String())
}
