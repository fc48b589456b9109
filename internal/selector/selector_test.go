package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssextend/selext/internal/selector"
)

func TestEqualIgnoresIdentity(t *testing.T) {
	a := selector.NewClass(selector.NoSpan, "foo")
	b := selector.NewClass(selector.NoSpan, "foo")
	assert.NotEqual(t, a.Identity(), b.Identity())
	assert.True(t, selector.Equal(a, b))
}

func TestEqualDistinguishesVariants(t *testing.T) {
	class := selector.NewClass(selector.NoSpan, "foo")
	id := selector.NewId(selector.NoSpan, "foo")
	assert.False(t, selector.Equal(class, id))
}

func TestAttributeEquality(t *testing.T) {
	a := selector.NewAttribute(selector.NoSpan, selector.QualifiedName{Name: "href"}, selector.Prefix, "/a", 0)
	b := selector.NewAttribute(selector.NoSpan, selector.QualifiedName{Name: "href"}, selector.Prefix, "/a", 0)
	c := selector.NewAttribute(selector.NoSpan, selector.QualifiedName{Name: "href"}, selector.Suffix, "/a", 0)
	assert.True(t, selector.Equal(a, b))
	assert.False(t, selector.Equal(a, c))
}

func TestCloneMintsFreshIdentity(t *testing.T) {
	c := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))})
	clone := c.Clone()
	require.NotEqual(t, c.Identity(), clone.Identity())
	assert.True(t, c.Equal(clone))
}

func TestCloneIdentityPreservesIdentity(t *testing.T) {
	c := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))})
	clone := c.CloneIdentity()
	assert.Equal(t, c.Identity(), clone.Identity())
}

func TestIsStandAloneAndRelative(t *testing.T) {
	plain := selector.NewComplex(selector.Component{Compound: selector.NewCompound(selector.NewClass(selector.NoSpan, "a"))})
	assert.True(t, plain.IsStandAlone())
	assert.True(t, plain.IsRelative())

	trailing := selector.NewComplex(selector.Component{
		Compound:           selector.NewCompound(selector.NewClass(selector.NoSpan, "a")),
		TrailingCombinator: selector.ChildOf,
	})
	assert.False(t, trailing.IsStandAlone())
	assert.False(t, trailing.IsRelative())
}

func TestPseudoKindClassification(t *testing.T) {
	assert.True(t, selector.KindForName("is").IsSubSelectorPseudo())
	assert.True(t, selector.KindForName("is").IsModernPseudo())
	assert.True(t, selector.KindForName("where").IsModernPseudo())
	assert.True(t, selector.KindForName("has").IsModernPseudo())
	assert.False(t, selector.KindForName("not").IsModernPseudo())
	assert.Equal(t, selector.PseudoOther, selector.KindForName("lang"))
}
