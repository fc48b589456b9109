// Package unify combines two simple, compound, or complex selectors into
// the selector(s) that match the intersection of the element sets each
// one matches on its own.
package unify

import (
	"github.com/cssextend/selext/internal/selector"
	"github.com/cssextend/selext/internal/weave"
)

// Namespace intersects two namespaces under the lattice Default < "*",
// where a Named namespace must match by name and "*" is compatible with
// anything (it yields the more specific operand).
func Namespace(a, b selector.Namespace) (selector.Namespace, bool) {
	if a.Kind == selector.AnyNamespace {
		return b, true
	}
	if b.Kind == selector.AnyNamespace {
		return a, true
	}
	if a.Kind != b.Kind {
		return selector.Namespace{}, false
	}
	if a.Kind == selector.NamedNamespace {
		return a, a.Name == b.Name
	}
	return a, true
}

// UniversalAndElement folds a pair of Universal/Type simple selectors
// together by intersecting their namespaces and names. Either operand may
// be a wildcard name ("*"); a concrete name always wins over a wildcard.
func UniversalAndElement(a, b selector.Simple) (selector.Simple, bool) {
	aU, aIsUniversal := a.(selector.Universal)
	bU, bIsUniversal := b.(selector.Universal)
	aT, aIsType := a.(selector.Type)
	bT, bIsType := b.(selector.Type)

	var aNS, bNS selector.Namespace
	switch {
	case aIsUniversal:
		aNS = aU.Namespace
	case aIsType:
		aNS = aT.Name.Namespace
	default:
		return nil, false
	}
	switch {
	case bIsUniversal:
		bNS = bU.Namespace
	case bIsType:
		bNS = bT.Name.Namespace
	default:
		return nil, false
	}

	ns, ok := Namespace(aNS, bNS)
	if !ok {
		return nil, false
	}

	if aIsUniversal && bIsUniversal {
		return selector.Universal{Namespace: ns}, true
	}

	var aName, bName string
	if aIsType {
		aName = aT.Name.Name
	}
	if bIsType {
		bName = bT.Name.Name
	}
	switch {
	case aIsUniversal:
		return selector.Type{Name: selector.QualifiedName{Name: bName, Namespace: ns}}, true
	case bIsUniversal:
		return selector.Type{Name: selector.QualifiedName{Name: aName, Namespace: ns}}, true
	case aName == bName:
		return selector.Type{Name: selector.QualifiedName{Name: aName, Namespace: ns}}, true
	default:
		return nil, false
	}
}

func isHostPseudo(s selector.Simple) bool {
	p, ok := s.(selector.Pseudo)
	if !ok {
		return false
	}
	k := p.Kind()
	return k == selector.PseudoHost || k == selector.PseudoHostContext
}

func isElementHead(s selector.Simple) bool {
	switch s.(type) {
	case selector.Universal, selector.Type:
		return true
	default:
		return false
	}
}

// Compound combines two compound selectors into the compound matching the
// intersection of their element sets, or reports failure if no such
// compound exists (e.g. conflicting ids, conflicting pseudo-elements, or
// conflicting element names/namespaces).
func Compound(a, b selector.Compound) (selector.Compound, bool) {
	var result selector.Compound

	aSimples, bSimples := a.Simples, b.Simples

	if len(aSimples) > 0 && len(bSimples) > 0 && isElementHead(aSimples[0]) && isElementHead(bSimples[0]) {
		merged, ok := UniversalAndElement(aSimples[0], bSimples[0])
		if !ok {
			return selector.Compound{}, false
		}
		result.Simples = append(result.Simples, merged)
		aSimples = aSimples[1:]
		bSimples = bSimples[1:]
	}

	result.Simples = append(result.Simples, aSimples...)

	for _, s := range bSimples {
		next, ok := SimpleIntoCompound(s, result)
		if !ok {
			return selector.Compound{}, false
		}
		result = next
	}

	if result.IsEmpty() {
		return selector.Compound{}, false
	}

	return placePseudoElementLast(result), true
}

// SimpleIntoCompound folds one additional simple selector into an
// already-built compound, applying the per-kind unification rules.
func SimpleIntoCompound(simple selector.Simple, compound selector.Compound) (selector.Compound, bool) {
	for _, existing := range compound.Simples {
		if selector.Equal(existing, simple) {
			return compound, true
		}
	}

	switch s := simple.(type) {
	case selector.Placeholder:
		// Placeholders never unify outside their own compound.
		return compound, false

	case selector.Parent:
		return compound, false

	case selector.Id:
		for _, existing := range compound.Simples {
			if _, ok := existing.(selector.Id); ok {
				return compound, false
			}
		}
		return appendSimple(compound, s), true

	case selector.Pseudo:
		if !s.IsClass {
			if _, has := compound.PseudoElement(); has {
				return compound, false
			}
			return appendSimple(compound, s), true
		}
		if isHostPseudo(s) {
			for _, existing := range compound.Simples {
				if isElementHead(existing) || isHostPseudo(existing) {
					continue
				}
				return compound, false
			}
		}
		return appendSimple(compound, s), true

	case selector.Universal, selector.Type:
		if len(compound.Simples) > 0 && isElementHead(compound.Simples[0]) {
			merged, ok := UniversalAndElement(compound.Simples[0], s)
			if !ok {
				return selector.Compound{}, false
			}
			out := compound.Clone()
			out.Simples[0] = merged
			return out, true
		}
		out := selector.Compound{Simples: append([]selector.Simple{s}, compound.Simples...)}
		return out, true

	default:
		return appendSimple(compound, s), true
	}
}

func appendSimple(compound selector.Compound, s selector.Simple) selector.Compound {
	out := compound.Clone()
	out.Simples = append(out.Simples, s)
	return out
}

// placePseudoElementLast re-sorts a compound's simples so its (at most
// one) pseudo-element sits at the tail, matching the well-formedness
// invariant that pseudo-elements appear last in a compound.
func placePseudoElementLast(c selector.Compound) selector.Compound {
	var pseudoElement selector.Simple
	rest := make([]selector.Simple, 0, len(c.Simples))
	for _, s := range c.Simples {
		if p, ok := s.(selector.Pseudo); ok && !p.IsClass {
			pseudoElement = s
			continue
		}
		rest = append(rest, s)
	}
	if pseudoElement != nil {
		rest = append(rest, pseudoElement)
	}
	return selector.Compound{Simples: rest}
}

// Complex combines two or more complex selectors into every complex
// selector matching the intersection of their element sets. Weaving
// interleaves the ancestor chains; the trailing compound of the result is
// the unification of every input's trailing compound.
func Complex(list []selector.Complex) ([]selector.Complex, bool) {
	if len(list) == 0 {
		return nil, false
	}
	if len(list) == 1 {
		return []selector.Complex{list[0]}, true
	}

	trailing := selector.Compound{}
	first := true
	for _, c := range list {
		last, ok := c.LastCompound()
		if !ok {
			return nil, false
		}
		if first {
			trailing = last
			first = false
			continue
		}
		merged, ok := Compound(trailing, last)
		if !ok {
			return nil, false
		}
		trailing = merged
	}

	leading := list[0].LeadingCombinator
	paths := make([][]selector.Component, len(list))
	for i, c := range list {
		if len(c.Components) == 0 {
			paths[i] = nil
			continue
		}
		paths[i] = append([]selector.Component(nil), c.Components[:len(c.Components)-1]...)
	}

	woven, ok := weave.Weave(paths, false)
	if !ok {
		return nil, false
	}

	out := make([]selector.Complex, 0, len(woven))
	for _, prefix := range woven {
		components := append(append([]selector.Component(nil), prefix...), selector.Component{Compound: trailing})
		out = append(out, selector.NewComplex(components...).WithLeading(leading))
	}
	return out, true
}
