// Package extendtest centralizes the selector-construction builders and
// equality assertions the internal/extend tests share, the way the
// teacher codebase's own internal/test package centralizes source-diffing
// and equality helpers for its tests.
package extendtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/selector"
)

// complexComparer delegates to Complex.Equal (value equality, spans and
// construction identity ignored) instead of letting cmp reflect into the
// unexported id field.
var complexComparer = cmp.Comparer(func(a, b selector.Complex) bool {
	return a.Equal(b)
})

// AssertListEqual fails the test with a readable diff if got and want
// aren't equal under selector.List.Equal.
func AssertListEqual(t *testing.T, got, want selector.List) {
	t.Helper()
	if diff := cmp.Diff(want, got, complexComparer); diff != "" {
		t.Fatalf("selector list mismatch (-want +got):\n%s", diff)
	}
}

// AssertComplexEqual fails the test with a readable diff if got and want
// aren't equal under selector.Complex.Equal.
func AssertComplexEqual(t *testing.T, got, want selector.Complex) {
	t.Helper()
	if diff := cmp.Diff(want, got, complexComparer); diff != "" {
		t.Fatalf("complex selector mismatch (-want +got):\n%s", diff)
	}
}

// --- construction builders ---

func Class(name string) selector.Class { return selector.NewClass(selector.NoSpan, name) }
func Id(name string) selector.Id       { return selector.NewId(selector.NoSpan, name) }

func Type(name string) selector.Type {
	return selector.NewType(selector.NoSpan, selector.QualifiedName{Name: name})
}

func Universal() selector.Universal {
	return selector.NewUniversal(selector.NoSpan, selector.Namespace{Kind: selector.DefaultNamespace})
}

func Compound(simples ...selector.Simple) selector.Compound {
	return selector.NewCompound(simples...)
}

// Seq builds a complex selector from compounds joined by descendant
// combinators (no component carries an explicit combinator).
func Seq(compounds ...selector.Compound) selector.Complex {
	components := make([]selector.Component, len(compounds))
	for i, c := range compounds {
		components[i] = selector.Component{Compound: c}
	}
	return selector.NewComplex(components...)
}

func Child(c selector.Compound) selector.Component {
	return selector.Component{Compound: c, TrailingCombinator: selector.ChildOf}
}

func NextSibling(c selector.Compound) selector.Component {
	return selector.Component{Compound: c, TrailingCombinator: selector.NextSibling}
}

func FollowingSibling(c selector.Compound) selector.Component {
	return selector.Component{Compound: c, TrailingCombinator: selector.FollowingSibling}
}

func Plain(c selector.Compound) selector.Component {
	return selector.Component{Compound: c}
}

func Complex(components ...selector.Component) selector.Complex {
	return selector.NewComplex(components...)
}

func List(complexes ...selector.Complex) selector.List {
	return selector.NewList(complexes...)
}

// Target wraps one or more simple selectors into the single-compound
// selector list the Extend/Replace one-shot entrypoints expect as an
// extendee (e.g. ".a.b" parsed down to one compound of two simples).
func Target(simples ...selector.Simple) selector.List {
	return List(Seq(Compound(simples...)))
}

func pseudoList(kind string, branches ...selector.Complex) selector.Pseudo {
	list := List(branches...)
	return selector.NewPseudo(selector.NoSpan, kind, kind, true, "", &list)
}

func Is(branches ...selector.Complex) selector.Pseudo    { return pseudoList("is", branches...) }
func Where(branches ...selector.Complex) selector.Pseudo { return pseudoList("where", branches...) }
func Has(branches ...selector.Complex) selector.Pseudo   { return pseudoList("has", branches...) }
func Not(branches ...selector.Complex) selector.Pseudo   { return pseudoList("not", branches...) }

// RequireNoError fails the test immediately if err is non-nil.
func RequireNoError(t *testing.T, err *diag.Error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

// RequireKind fails the test if err is nil or doesn't carry the given kind.
func RequireKind(t *testing.T, err *diag.Error, kind diag.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error of kind %s, got none", kind)
	}
	if err.Kind != kind {
		t.Fatalf("expected error kind %s, got %s (%s)", kind, err.Kind, err.Error())
	}
}
