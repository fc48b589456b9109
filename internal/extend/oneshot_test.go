package extend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/extend"
	"github.com/cssextend/selext/internal/extendtest"
	"github.com/cssextend/selext/internal/selector"
)

func TestExtendAddsAlternativeKeepingOriginal(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))

	out, err := extend.Extend(list, extendtest.Target(extendtest.Class("a")), extender, selector.NoSpan)
	extendtest.RequireNoError(t, err)

	require.Len(t, out.Complexes, 2)
	names := map[string]bool{}
	for _, c := range out.Complexes {
		names[c.Components[0].Compound.Simples[0].(selector.Class).Name] = true
	}
	assert.True(t, names["a"])
	assert.True(t, names["b"])
}

func TestReplaceDropsOriginalWhenSubstitutionProduced(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))

	out, err := extend.Replace(list, extendtest.Target(extendtest.Class("a")), extender, selector.NoSpan)
	extendtest.RequireNoError(t, err)

	require.Len(t, out.Complexes, 1)
	assert.Equal(t, "b", out.Complexes[0].Components[0].Compound.Simples[0].(selector.Class).Name)
}

func TestExtendNoMatchLeavesListUnchanged(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("z"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))

	out, err := extend.Extend(list, extendtest.Target(extendtest.Class("a")), extender, selector.NoSpan)
	extendtest.RequireNoError(t, err)
	extendtest.AssertListEqual(t, out, list)
}

func TestExtendRejectsSelfExtend(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))

	out, err := extend.Extend(list, extendtest.Target(extendtest.Class("a")), extender, selector.NoSpan)
	extendtest.RequireNoError(t, err)
	require.Len(t, out.Complexes, 1)
}

func TestExtendRejectsNonCompoundExtendee(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))

	// Two complex selectors (".a, .c") can't reduce to a single compound.
	extendee := extendtest.List(
		extendtest.Seq(extendtest.Compound(extendtest.Class("a"))),
		extendtest.Seq(extendtest.Compound(extendtest.Class("c"))),
	)

	_, err := extend.Extend(list, extendee, extender, selector.NoSpan)
	extendtest.RequireKind(t, err, diag.InvalidExtendTarget)
}

func TestExtendRejectsExtendeeWithCombinator(t *testing.T) {
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))

	// "> .a" isn't a plain single compound either.
	extendee := extendtest.List(extendtest.Complex(extendtest.Child(extendtest.Compound(extendtest.Class("a")))))

	_, err := extend.Extend(list, extendee, extender, selector.NoSpan)
	extendtest.RequireKind(t, err, diag.InvalidExtendTarget)
}

func TestExtendWithCompoundExtendeeRequiresAllTargets(t *testing.T) {
	// Only ".a.b" together should be extended; ".a" alone must be left alone.
	list := extendtest.List(
		extendtest.Seq(extendtest.Compound(extendtest.Class("a"), extendtest.Class("b"))),
		extendtest.Seq(extendtest.Compound(extendtest.Class("a"))),
	)
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("c"))))
	extendee := extendtest.Target(extendtest.Class("a"), extendtest.Class("b"))

	out, err := extend.Extend(list, extendee, extender, selector.NoSpan)
	extendtest.RequireNoError(t, err)

	// ".a.b" (self, kept), ".b.c" and ".a.c" (one target substituted at a
	// time), ".c" alone (both targets substituted by the same extender at
	// once, so the duplicate simple collapses via unify.Complex), plus the
	// untouched ".a" alone.
	require.Len(t, out.Complexes, 5)
	var sawBothSubstituted bool
	for _, c := range out.Complexes {
		if len(c.Components) == 1 && len(c.Components[0].Compound.Simples) == 1 {
			if cls, ok := c.Components[0].Compound.Simples[0].(selector.Class); ok && cls.Name == "c" {
				sawBothSubstituted = true
			}
		}
	}
	assert.True(t, sawBothSubstituted, "expected .a and .b to unify into a single .c candidate when both are substituted at once")
}
