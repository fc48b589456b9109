package extend

import (
	"github.com/cssextend/selext/internal/selector"
	"github.com/cssextend/selext/internal/superselector"
)

// trimModernPseudos is the modern-pseudo trim visitor: after extension has
// run, the selector lists nested inside :is()/:where()/:has() can carry branches
// that are redundant with each other (extension often produces several
// near-identical alternatives), or wrap a single simple selector in a
// pseudo that serves no purpose. This pass walks every selector list in the
// store's modern-pseudo-touched cells and collapses both.
//
// :where()'s branches never affect the page's computed specificity (the
// pseudo always contributes zero), so its trim pass ignores specificity
// entirely and keeps the narrowest covering set. :is()'s branches
// contribute their max specificity to the enclosing compound, so a branch
// is only dropped in favor of another that's at least as specific.
// :has() is left structurally alone, kept nested rather than flattened or
// branch-trimmed, since relative-selector matching is out of scope; its
// inner list is still recursed into so nested :is()/:where() wrappers
// further inside get their own trim pass.
func trimModernPseudos(s *Store, list selector.List) selector.List {
	out := make([]selector.Complex, len(list.Complexes))
	for i, c := range list.Complexes {
		out[i] = trimComplex(s, c)
	}
	return selector.NewList(out...)
}

func trimComplex(s *Store, c selector.Complex) selector.Complex {
	components := make([]selector.Component, len(c.Components))
	changed := false
	for i, comp := range c.Components {
		nc := trimCompound(s, comp.Compound)
		components[i] = selector.Component{Compound: nc, TrailingCombinator: comp.TrailingCombinator}
		if !nc.Equal(comp.Compound) {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return c.WithComponents(components)
}

func trimCompound(s *Store, compound selector.Compound) selector.Compound {
	simples := make([]selector.Simple, len(compound.Simples))
	copy(simples, compound.Simples)
	changed := false

	for i, simple := range simples {
		p, ok := simple.(selector.Pseudo)
		if !ok || p.Selector == nil || !p.Kind().IsModernPseudo() {
			continue
		}

		inner := trimModernPseudos(s, *p.Selector)
		inner = trimPseudoBranches(p.Kind(), inner)

		if flat, ok := flattenSingleBranch(p.Kind(), inner); ok {
			simples[i] = flat
			changed = true
			continue
		}

		if !inner.Equal(*p.Selector) {
			simples[i] = selector.NewPseudo(p.Span(), p.Name, p.NormalizedName, p.IsClass, p.Argument, &inner)
			changed = true
		}
	}

	if !changed {
		return compound
	}
	return selector.NewCompound(simples...)
}

// trimPseudoBranches removes a branch when some other remaining branch is a
// superselector of it, processing last-to-first so earlier, often more
// general, alternatives win ties.
func trimPseudoBranches(kind selector.PseudoKind, list selector.List) selector.List {
	if kind == selector.PseudoHas {
		return list
	}
	in := list.Complexes
	if len(in) <= 1 {
		return list
	}

	ignoreSpecificity := kind == selector.PseudoWhere

	removed := make([]bool, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		for j := range in {
			if j == i || removed[j] {
				continue
			}
			if !superselector.Complex(in[j], in[i]) {
				continue
			}
			if !ignoreSpecificity && selector.OfComplex(in[j]) < selector.OfComplex(in[i]) {
				continue
			}
			removed[i] = true
			break
		}
	}

	out := make([]selector.Complex, 0, len(in))
	for i, c := range in {
		if !removed[i] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return list
	}
	return selector.NewList(out...)
}

// flattenSingleBranch collapses ":is(.foo)" or ":where(.foo)" — an inner
// list with exactly one complex selector made of exactly one compound with
// exactly one simple selector — down to that simple selector directly, the
// same way a compiler drops a needless single-armed union type. ":has()"
// is never flattened: "a:has(b)" and "a b" mean different things.
func flattenSingleBranch(kind selector.PseudoKind, list selector.List) (selector.Simple, bool) {
	if kind == selector.PseudoHas {
		return nil, false
	}
	if len(list.Complexes) != 1 {
		return nil, false
	}
	c := list.Complexes[0]
	if c.LeadingCombinator != selector.NoCombinator || len(c.Components) != 1 {
		return nil, false
	}
	comp := c.Components[0]
	if comp.TrailingCombinator != selector.NoCombinator || len(comp.Compound.Simples) != 1 {
		return nil, false
	}
	return comp.Compound.Simples[0], true
}
