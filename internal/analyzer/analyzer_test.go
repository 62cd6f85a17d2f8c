package analyzer

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for StructureAnalyzer extraction:
// - Extract top-level function declarations with signatures
// - Extract exported functions exactly once (export unwrap + offset dedup)
// - Extract classes with nested methods
// - Class signatures end with " { ... }" and elide the body
// - Skip declarations without an extractable name
// - Arrow functions assigned to const are not function declarations
// - Handle garbage input without panicking
// - Analyze is pure: same input yields structurally identical results

func TestAnalyzer_ExtractFunctions(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
function validateEmail(email: string): boolean {
  return email.includes("@");
}

function formatName(first: string, last: string): string {
  return first + " " + last;
}
`)

	result := a.Analyze(src)
	require.NotNil(t, result)
	require.Len(t, result.Functions, 2)

	assert.Equal(t, "validateEmail", result.Functions[0].Name)
	assert.Equal(t, "function validateEmail(email: string): boolean", result.Functions[0].Signature)
	assert.NotContains(t, result.Functions[0].Signature, "includes")

	assert.Equal(t, "formatName", result.Functions[1].Name)
	assert.Contains(t, result.Functions[1].Signature, "formatName(first: string, last: string)")
}

func TestAnalyzer_ExportedFunctionCountedOnce(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`export function foo() {}`)

	result := a.Analyze(src)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "foo", result.Functions[0].Name)

	// The export wrapper is unwrapped before slicing, so the signature starts
	// at the declaration itself.
	assert.Equal(t, "function foo()", result.Functions[0].Signature)
}

func TestAnalyzer_ExtractClassWithMethods(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
export class UserService {
  private users: string[] = [];

  addUser(name: string): void {
    this.users.push(name);
  }

  count(): number {
    return this.users.length;
  }
}
`)

	result := a.Analyze(src)
	require.Len(t, result.Classes, 1)

	cls := result.Classes[0]
	assert.Equal(t, "UserService", cls.Name)
	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "addUser", cls.Methods[0].Name)
	assert.Equal(t, "count", cls.Methods[1].Name)
	assert.Contains(t, cls.Methods[0].Signature, "addUser(name: string)")
}

func TestAnalyzer_ClassSignatureElidesBody(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
class Foo {
  constructor() {
    this.ready = true;
  }
}
`)

	result := a.Analyze(src)
	require.Len(t, result.Classes, 1)

	sig := result.Classes[0].Signature
	assert.True(t, strings.HasSuffix(sig, " { ... }"), "signature %q should end with elision marker", sig)
	assert.NotContains(t, sig, "this.ready")
	assert.Contains(t, sig, "class Foo")
}

func TestAnalyzer_ExtendsClauseKeptInSignature(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
class Base {}
class Derived extends Base {
  run(): void {}
}
`)

	result := a.Analyze(src)
	require.Len(t, result.Classes, 2)
	assert.Equal(t, "class Derived extends Base { ... }", result.Classes[1].Signature)
}

func TestAnalyzer_ArrowFunctionsNotExtracted(t *testing.T) {
	t.Parallel()

	// Arrow functions assigned to a const are not function declarations and
	// contribute nothing.
	a := NewAnalyzer()
	src := []byte(`
const helper = (x: number) => x * 2;
function real() {}
`)

	result := a.Analyze(src)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "real", result.Functions[0].Name)
}

func TestAnalyzer_GarbageInputDegradesGracefully(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(WithLogger(log.New(&bytes.Buffer{}, "", 0)))

	inputs := [][]byte{
		[]byte("class {{{{{"),
		[]byte("function ((((("),
		[]byte("\x00\x01\x02\xff"),
		{},
		nil,
	}

	for _, src := range inputs {
		require.NotPanics(t, func() {
			result := a.Analyze(src)
			// Best-effort partial results are fine; nil is not.
			require.NotNil(t, result)
			require.NotNil(t, result.Functions)
			require.NotNil(t, result.Classes)
		})
	}
}

func TestAnalyzer_EmptySource(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	result := a.Analyze([]byte(""))
	require.NotNil(t, result)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
}

func TestAnalyzer_Idempotent(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
export function load() { save(); }
export function save() {}

class Store {
  flush(): void { save(); }
}
`)

	first := a.Analyze(src)
	second := a.Analyze(src)
	assert.Equal(t, first, second)
}

func TestAnalyzer_DeclarationOrderPreserved(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	src := []byte(`
function zulu() {}
function alpha() {}
function mike() {}
`)

	result := a.Analyze(src)
	require.Len(t, result.Functions, 3)
	assert.Equal(t, "zulu", result.Functions[0].Name)
	assert.Equal(t, "alpha", result.Functions[1].Name)
	assert.Equal(t, "mike", result.Functions[2].Name)
}

func TestAnalyzer_Language(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typescript", NewAnalyzer().Language())
}
