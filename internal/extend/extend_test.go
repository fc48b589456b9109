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

func classNames(list selector.List) []string {
	var out []string
	for _, c := range list.Complexes {
		for _, comp := range c.Components {
			for _, s := range comp.Compound.Simples {
				if cl, ok := s.(selector.Class); ok {
					out = append(out, cl.Name)
				}
			}
		}
	}
	return out
}

// Scenario 1: ".a { } .b { @extend .a; }" => ".a, .b"
func TestScenarioPlainExtend(t *testing.T) {
	s := extend.New()
	view, err := s.AddSelector(extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a")))), nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, classNames(got))
}

// Scenario 2: ".a .b { } .x { @extend .b; }" => ".a .b, .a .x"
func TestScenarioDescendantExtend(t *testing.T) {
	s := extend.New()
	list := extendtest.List(extendtest.Seq(
		extendtest.Compound(extendtest.Class("a")),
		extendtest.Compound(extendtest.Class("b")),
	))
	view, err := s.AddSelector(list, nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("x"))))
	err = s.AddExtension(extender, extendtest.Class("b"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 2)
	for _, c := range got.Complexes {
		require.Len(t, c.Components, 2)
		assert.Equal(t, "a", c.Components[0].Compound.Simples[0].(selector.Class).Name)
	}
}

// Scenario 3: "#id.a { } .x { @extend .a; }" => "#id.a, #id.x"
func TestScenarioIdCompoundExtend(t *testing.T) {
	s := extend.New()
	list := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Id("id"), extendtest.Class("a"))))
	view, err := s.AddSelector(list, nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("x"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 2)
	for _, c := range got.Complexes {
		simples := c.Components[0].Compound.Simples
		require.Len(t, simples, 2)
		_, isID := simples[0].(selector.Id)
		assert.True(t, isID)
	}
}

// Scenario 4: ":not(.a) { } .x { @extend .a; }" — the extension target lives
// inside the pseudo's own inner selector list, so extendNestedPseudos
// rewrites that inner list (gaining the ".x" alternative) while the single
// outer complex selector itself is preserved, one compound wrapping an
// updated ":not(.a, .x)".
func TestScenarioNotRewritesInnerSelectorList(t *testing.T) {
	s := extend.New()
	inner := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	notPseudo := selector.NewPseudo(selector.NoSpan, "not", "not", true, "", &inner)
	list := extendtest.List(extendtest.Seq(extendtest.Compound(notPseudo)))
	view, err := s.AddSelector(list, nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("x"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 1)
	p, ok := got.Complexes[0].Components[0].Compound.Simples[0].(selector.Pseudo)
	require.True(t, ok)
	require.NotNil(t, p.Selector)
	assert.ElementsMatch(t, []string{"a", "x"}, classNames(*p.Selector))
}

// Scenario 5: ".a { } .b, .c { @extend .a; }" => ".a, .b, .c"
func TestScenarioMultipleExtendersOfSameTarget(t *testing.T) {
	s := extend.New()
	view, err := s.AddSelector(extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a")))), nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(
		extendtest.Seq(extendtest.Compound(extendtest.Class("b"))),
		extendtest.Seq(extendtest.Compound(extendtest.Class("c"))),
	)
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 3)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, classNames(got))
}

// Scenario 6: ":is(.a, .b) { } .x { @extend .a; }" => ":is(.a, .b, .x)",
// the modern-pseudo path folding the substitution into the existing list
// with no duplicate branch.
func TestScenarioIsPseudoExtendFoldsIntoExistingList(t *testing.T) {
	s := extend.New()
	inner := extendtest.List(
		extendtest.Seq(extendtest.Compound(extendtest.Class("a"))),
		extendtest.Seq(extendtest.Compound(extendtest.Class("b"))),
	)
	isPseudo := selector.NewPseudo(selector.NoSpan, "is", "is", true, "", &inner)
	list := extendtest.List(extendtest.Seq(extendtest.Compound(isPseudo)))
	view, err := s.AddSelector(list, nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("x"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 1)
	p, ok := got.Complexes[0].Components[0].Compound.Simples[0].(selector.Pseudo)
	require.True(t, ok)
	require.NotNil(t, p.Selector)
	assert.ElementsMatch(t, []string{"a", "b", "x"}, classNames(*p.Selector))
}

// Scenario 7: "!optional" extend whose target is never defined raises no
// error and the extender is preserved as written.
func TestScenarioOptionalExtendNeverMatchedIsNotAnError(t *testing.T) {
	s := extend.New()
	view, err := s.AddSelector(extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b")))), nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, true)
	extendtest.RequireNoError(t, err)

	assert.Empty(t, s.Finalize())
	require.Len(t, view.List().Complexes, 1)
	assert.Equal(t, "b", classNames(view.List())[0])
}

// Scenario 8: ".a .b { } .x .y { @extend .b; }" weaves into three
// interleavings of the two independent ancestor chains: ".a .b" (the
// original), ".a .x .y", and ".x .a .y" — the extender's own ancestor
// component ("x") is free to land on either side of the surrounding
// complex's neighboring component ("a"), exactly as weave.Weave's block
// interleaving allows for two separate rules' selectors being combined.
func TestScenarioExtenderAncestorsWeaveAgainstSurroundingPrefix(t *testing.T) {
	s := extend.New()
	list := extendtest.List(extendtest.Seq(
		extendtest.Compound(extendtest.Class("a")),
		extendtest.Compound(extendtest.Class("b")),
	))
	view, err := s.AddSelector(list, nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(
		extendtest.Compound(extendtest.Class("x")),
		extendtest.Compound(extendtest.Class("y")),
	))
	err = s.AddExtension(extender, extendtest.Class("b"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	got := view.List()
	require.Len(t, got.Complexes, 3)

	foundOriginal, foundAXY, foundXAY := false, false, false
	for _, c := range got.Complexes {
		ns := classNames(selector.NewList(c))
		switch {
		case len(ns) == 2 && ns[0] == "a" && ns[1] == "b":
			foundOriginal = true
		case len(ns) == 3 && ns[0] == "a" && ns[1] == "x" && ns[2] == "y":
			foundAXY = true
		case len(ns) == 3 && ns[0] == "x" && ns[1] == "a" && ns[2] == "y":
			foundXAY = true
		}
	}
	assert.True(t, foundOriginal, "original .a .b must survive")
	assert.True(t, foundAXY, "expected .a .x .y from weaving x ahead of the shared ancestor a")
	assert.True(t, foundXAY, "expected .x .a .y from weaving x behind the shared ancestor a")
}

// Boundary: self-loop extend must not diverge and must leave the selector
// stable.
func TestBoundarySelfLoopExtendIsStable(t *testing.T) {
	s := extend.New()
	view, err := s.AddSelector(extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a")))), nil)
	extendtest.RequireNoError(t, err)

	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("a"))))
	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, nil, false)
	extendtest.RequireNoError(t, err)

	require.Len(t, view.List().Complexes, 1)
}

// Boundary: extending across @media boundaries raises CrossMediaExtend.
type fakeMedia string

func (f fakeMedia) Equal(o extend.MediaContext) bool {
	other, ok := o.(fakeMedia)
	return ok && f == other
}

func TestBoundaryCrossMediaExtendIsAnError(t *testing.T) {
	s := extend.New()
	extender := extendtest.List(extendtest.Seq(extendtest.Compound(extendtest.Class("b"))))
	err := s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, fakeMedia("screen"), false)
	extendtest.RequireNoError(t, err)

	err = s.AddExtension(extender, extendtest.Class("a"), selector.NoSpan, fakeMedia("print"), false)
	extendtest.RequireKind(t, err, diag.CrossMediaExtend)
}
