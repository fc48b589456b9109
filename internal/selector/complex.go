package selector

// Complex is a sequence of compound selectors joined by combinators,
// optionally preceded by a leading combinator (an esbuild-style CSS
// nesting extension: "> .foo" as a relative selector fragment).
//
// Invariant: Components is empty only when LeadingCombinator is set (i.e.
// a bare leading combinator with nothing after it is never constructed by
// this package, but a caller gluing fragments together may pass one
// through transiently).
type Complex struct {
	LeadingCombinator Combinator
	Components        []Component
	LineBreak         bool // preserved purely for later serialization, opaque here

	// id is a construction-time handle used wherever the surrounding system
	// needs identity rather than value equality — most notably the store's
	// "originals" set, which refers to selectors by identity, not value.
	// Clone() mints a fresh id by default; CloneIdentity preserves it, so a
	// copy made with it still counts as the same selector in that set.
	id uint64
}

func NewComplex(components ...Component) Complex {
	return Complex{Components: components, id: newID()}
}

func (c Complex) Identity() uint64 { return c.id }

// WithLeading returns a copy of c with its leading combinator replaced,
// keeping the same identity (it's the same selector, just annotated).
func (c Complex) WithLeading(leading Combinator) Complex {
	c.LeadingCombinator = leading
	return c
}

// IsStandAlone reports whether this complex selector has neither a leading
// nor a trailing combinator.
func (c Complex) IsStandAlone() bool {
	return c.LeadingCombinator == NoCombinator && !c.hasTrailingCombinator()
}

// IsRelative reports whether this complex selector has no trailing
// combinator (it may still have a leading one).
func (c Complex) IsRelative() bool {
	return !c.hasTrailingCombinator()
}

func (c Complex) hasTrailingCombinator() bool {
	if len(c.Components) == 0 {
		return false
	}
	return c.Components[len(c.Components)-1].TrailingCombinator != NoCombinator
}

// LastCompound returns the trailing compound selector, the one the final
// element in the selector's match must satisfy.
func (c Complex) LastCompound() (Compound, bool) {
	if len(c.Components) == 0 {
		return Compound{}, false
	}
	return c.Components[len(c.Components)-1].Compound, true
}

func (c Complex) Clone() Complex {
	return c.cloneWithID(newID())
}

// CloneIdentity copies a complex selector but keeps the original's
// identity handle, so the copy is still recognized by the "originals" set
// wherever the original is. The extend package itself never calls it.
func (c Complex) CloneIdentity() Complex {
	return c.cloneWithID(c.id)
}

func (c Complex) cloneWithID(id uint64) Complex {
	components := make([]Component, len(c.Components))
	for i, comp := range c.Components {
		components[i] = comp.Clone()
	}
	return Complex{LeadingCombinator: c.LeadingCombinator, Components: components, LineBreak: c.LineBreak, id: id}
}

// WithComponents returns a copy of c with its component list replaced,
// minting a fresh identity (it's a new derived selector, not a copy of an
// existing one).
func (c Complex) WithComponents(components []Component) Complex {
	return Complex{LeadingCombinator: c.LeadingCombinator, Components: components, LineBreak: c.LineBreak, id: newID()}
}

// UsesPseudoElement reports whether the trailing compound carries a
// pseudo-element; such complex selectors are filtered out of some
// extension contexts.
func (c Complex) UsesPseudoElement() bool {
	last, ok := c.LastCompound()
	if !ok {
		return false
	}
	_, has := last.PseudoElement()
	return has
}

// List is a non-empty ordered list of complex selectors — what a CSS rule
// prelude ultimately parses down to, and what every extension operation
// consumes and produces.
type List struct {
	Complexes []Complex
}

func NewList(complexes ...Complex) List {
	return List{Complexes: complexes}
}

func (l List) Clone() List {
	out := make([]Complex, len(l.Complexes))
	for i, c := range l.Complexes {
		out[i] = c.Clone()
	}
	return List{Complexes: out}
}

// SelectorList is an alias kept for readability at call sites where
// "a selector list" reads more naturally than "a List" (e.g. inside
// Pseudo.Selector).
type SelectorList = List
