package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssextend/selext/internal/selector"
	"github.com/cssextend/selext/internal/unify"
)

func TestNamespaceAnyIsCompatibleWithNamed(t *testing.T) {
	any := selector.Namespace{Kind: selector.AnyNamespace}
	named := selector.Namespace{Kind: selector.NamedNamespace, Name: "svg"}
	got, ok := unify.Namespace(any, named)
	require.True(t, ok)
	assert.Equal(t, named, got)
}

func TestNamespaceNamedMustMatch(t *testing.T) {
	a := selector.Namespace{Kind: selector.NamedNamespace, Name: "svg"}
	b := selector.Namespace{Kind: selector.NamedNamespace, Name: "html"}
	_, ok := unify.Namespace(a, b)
	assert.False(t, ok)
}

func TestUniversalAndElementConcreteWinsOverWildcard(t *testing.T) {
	universal := selector.NewUniversal(selector.NoSpan, selector.Namespace{})
	div := selector.NewType(selector.NoSpan, selector.QualifiedName{Name: "div"})
	got, ok := unify.UniversalAndElement(universal, div)
	require.True(t, ok)
	typeSel, ok := got.(selector.Type)
	require.True(t, ok)
	assert.Equal(t, "div", typeSel.Name.Name)
}

func TestUniversalAndElementConflictingNamesFail(t *testing.T) {
	div := selector.NewType(selector.NoSpan, selector.QualifiedName{Name: "div"})
	span := selector.NewType(selector.NoSpan, selector.QualifiedName{Name: "span"})
	_, ok := unify.UniversalAndElement(div, span)
	assert.False(t, ok)
}

func TestCompoundMergesDisjointSimples(t *testing.T) {
	a := selector.NewCompound(selector.NewClass(selector.NoSpan, "foo"))
	b := selector.NewCompound(selector.NewClass(selector.NoSpan, "bar"))
	got, ok := unify.Compound(a, b)
	require.True(t, ok)
	assert.Len(t, got.Simples, 2)
}

func TestCompoundRejectsConflictingIds(t *testing.T) {
	a := selector.NewCompound(selector.NewId(selector.NoSpan, "foo"))
	b := selector.NewCompound(selector.NewId(selector.NoSpan, "bar"))
	_, ok := unify.Compound(a, b)
	assert.False(t, ok)
}

func TestCompoundRejectsConflictingPseudoElements(t *testing.T) {
	before := selector.NewPseudo(selector.NoSpan, "before", "before", false, "", nil)
	after := selector.NewPseudo(selector.NoSpan, "after", "after", false, "", nil)
	a := selector.NewCompound(before)
	b := selector.NewCompound(after)
	_, ok := unify.Compound(a, b)
	assert.False(t, ok)
}

func TestCompoundMergesElementHeads(t *testing.T) {
	div := selector.NewCompound(selector.NewType(selector.NoSpan, selector.QualifiedName{Name: "div"}), selector.NewClass(selector.NoSpan, "a"))
	universal := selector.NewCompound(selector.NewUniversal(selector.NoSpan, selector.Namespace{}), selector.NewClass(selector.NoSpan, "b"))
	got, ok := unify.Compound(div, universal)
	require.True(t, ok)
	typeSel, ok := got.Simples[0].(selector.Type)
	require.True(t, ok)
	assert.Equal(t, "div", typeSel.Name.Name)
	assert.Len(t, got.Simples, 3)
}

func TestSimpleIntoCompoundDedupesEqualSimple(t *testing.T) {
	compound := selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))
	got, ok := unify.SimpleIntoCompound(selector.NewClass(selector.NoSpan, "a"), compound)
	require.True(t, ok)
	assert.Len(t, got.Simples, 1)
}

func TestSimpleIntoCompoundRejectsPlaceholder(t *testing.T) {
	compound := selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))
	_, ok := unify.SimpleIntoCompound(selector.NewPlaceholder(selector.NoSpan, "foo", false), compound)
	assert.False(t, ok)
}

func TestSimpleIntoCompoundRejectsParent(t *testing.T) {
	compound := selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))
	_, ok := unify.SimpleIntoCompound(selector.NewParent(selector.NoSpan, ""), compound)
	assert.False(t, ok)
}

func TestSimpleIntoCompoundRejectsSecondPseudoElement(t *testing.T) {
	before := selector.NewPseudo(selector.NoSpan, "before", "before", false, "", nil)
	after := selector.NewPseudo(selector.NoSpan, "after", "after", false, "", nil)
	compound := selector.NewCompound(before)
	_, ok := unify.SimpleIntoCompound(after, compound)
	assert.False(t, ok)
}

func TestComplexUnifiesTrailingCompoundsAndWeavesAncestors(t *testing.T) {
	// ".a .b" unified with ".x .y" must unify the trailing compounds (".b"
	// with ".y") and weave the two independent ancestor prefixes.
	a := selector.NewComplex(
		selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))},
		selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "b"))},
	)
	b := selector.NewComplex(
		selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "x"))},
		selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "y"))},
	)
	out, ok := unify.Complex([]selector.Complex{a, b})
	require.True(t, ok)
	assert.NotEmpty(t, out)
	for _, c := range out {
		last, ok := c.LastCompound()
		require.True(t, ok)
		assert.Len(t, last.Simples, 2)
	}
}

func TestComplexSingleInputReturnsItself(t *testing.T) {
	a := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))})
	out, ok := unify.Complex([]selector.Complex{a})
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(a))
}

func TestComplexEmptyInputFails(t *testing.T) {
	_, ok := unify.Complex(nil)
	assert.False(t, ok)
}

func TestComplexRejectsConflictingTrailingCompounds(t *testing.T) {
	a := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewId(selector.NoSpan, "foo"))})
	b := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewId(selector.NoSpan, "bar"))})
	_, ok := unify.Complex([]selector.Complex{a, b})
	assert.False(t, ok)
}
