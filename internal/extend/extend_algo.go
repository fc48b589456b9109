package extend

import (
	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/selector"
	"github.com/cssextend/selext/internal/unify"
	"github.com/cssextend/selext/internal/weave"
)

type extendMode uint8

const (
	modeNormal extendMode = iota
	modeReplace
	modeAllTargets
)

type extendContext struct {
	store *Store
	mode  extendMode
	media MediaContext

	// requiredTargets is non-empty only for the selector-extend()/
	// selector-replace() one-shot entrypoints (modeAllTargets/modeReplace
	// with a multi-simple extendee): a compound is only eligible to be
	// extended at all if it carries every one of these simples already.
	requiredTargets []selector.Simple
}

// maxExtendCandidates bounds the cartesian products this package builds
// (across a compound's simples, and across a complex's components),
// mirroring weave's own cap: a pathological chain of highly-ambiguous
// extensions stops growing rather than blowing up memory.
const maxExtendCandidates = 512

// extendList is the entrypoint used by AddSelector, AddExtension's
// propagation, and the one-shot Extend/Replace helpers: run every complex
// selector in list through extendComplex, flatten, dedupe and trim the
// result. hit reports whether anything in list touched a registered
// extension or contains a selector-accepting :is/:where/:has pseudo.
func (s *Store) extendList(list selector.List, restrictTo []*Extension, ctx extendContext) (selector.List, bool, *diag.Error) {
	var out []selector.Complex
	hit := false
	for _, complex := range list.Complexes {
		results, h, err := s.extendComplex(complex, restrictTo, ctx)
		if err != nil {
			return selector.List{}, false, err
		}
		if h {
			hit = true
		}
		out = append(out, results...)
	}
	out = dedupeComplexes(out)
	if ctx.mode != modeReplace {
		out = trim(s, out)
	}
	return selector.NewList(out...), hit, nil
}

func dedupeComplexes(in []selector.Complex) []selector.Complex {
	var out []selector.Complex
	for _, c := range in {
		dup := false
		for _, o := range out {
			if o.Equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// extendComplex walks each component of complex, asks extendCompound for
// every alternative that component's compound could stand for, and
// recombines the per-component alternatives into whole complex selectors.
//
// A cartesian-product combination that substitutes exactly one component
// is woven against the rest of the complex via weave.Weave (the same
// ancestor-chain interleaving unify.Complex uses to combine separate
// rules' selectors): the substituted component's own ancestor chain is
// free to interleave with whichever neighbouring components precede it,
// exactly as dart-sass's own extend does for "a b { @extend .x }" inside
// ".y .x". A combination that substitutes two or more components at once
// falls back to straight concatenation in original slot order — the
// ancestor chains contributed by independently-extended components are
// not woven against each other, only spliced in at their own slot. This
// narrower case is rare (it requires two different original components
// of the same complex selector to each match an @extend target whose own
// extender carries ancestors) and under-generates rather than produces
// an incorrect selector.
func (s *Store) extendComplex(complex selector.Complex, restrictTo []*Extension, ctx extendContext) ([]selector.Complex, bool, *diag.Error) {
	perComponent := make([][]selector.Complex, len(complex.Components))
	selfIndex := make([]int, len(complex.Components))
	lens := make([]int, len(complex.Components))
	anyHit := false

	for i, comp := range complex.Components {
		candidates, self, hit, err := s.extendCompound(comp.Compound, restrictTo, ctx)
		if err != nil {
			return nil, false, err
		}
		if hit {
			anyHit = true
		}
		for j := range candidates {
			candidates[j] = setTrailingCombinator(candidates[j], comp.TrailingCombinator)
		}
		perComponent[i] = candidates
		selfIndex[i] = self
		lens[i] = len(candidates)
	}

	if !anyHit {
		return []selector.Complex{complex}, false, nil
	}

	combos := cartesianIndices(lens)
	out := make([]selector.Complex, 0, len(combos))
	seenOriginal := false
	for _, combo := range combos {
		changed := changedSlots(combo, selfIndex)
		switch len(changed) {
		case 0:
			if seenOriginal {
				continue
			}
			seenOriginal = true
			out = append(out, complex)
		case 1:
			chosen := chooseSlots(perComponent, combo)
			out = append(out, weaveSingleSubstitution(chosen, changed[0], complex.LeadingCombinator)...)
		default:
			chosen := chooseSlots(perComponent, combo)
			out = append(out, selector.NewComplex(flattenComponents(chosen)...).WithLeading(complex.LeadingCombinator))
		}
	}
	return out, true, nil
}

// changedSlots returns the indices where combo picked something other
// than that slot's self option (selfIndex[i] == -1 means the slot has no
// self option at all — selector-replace()'s compound-extendee case — so
// every choice there counts as changed).
func changedSlots(combo []int, selfIndex []int) []int {
	var out []int
	for i, idx := range combo {
		if idx != selfIndex[i] {
			out = append(out, i)
		}
	}
	return out
}

func chooseSlots(perComponent [][]selector.Complex, combo []int) []selector.Complex {
	chosen := make([]selector.Complex, len(combo))
	for i, idx := range combo {
		chosen[i] = perComponent[i][idx]
	}
	return chosen
}

// weaveSingleSubstitution handles the common case: every slot but one
// kept its original compound, and slot k was replaced by a candidate
// that may itself carry ancestor components (e.g. "a b { @extend .x }").
// Those ancestor components are woven against the fixed chain of
// components from slots before k; slot k's own trailing compound, and
// everything after it, stay put.
func weaveSingleSubstitution(chosen []selector.Complex, k int, leading selector.Combinator) []selector.Complex {
	substituted := chosen[k]
	if len(substituted.Components) == 0 {
		return nil
	}
	before := flattenComponents(chosen[:k])
	after := flattenComponents(chosen[k+1:])
	ancestors := substituted.Components[:len(substituted.Components)-1]
	final := substituted.Components[len(substituted.Components)-1]

	woven, ok := weave.Weave([][]selector.Component{before, ancestors}, false)
	if !ok {
		return nil
	}

	out := make([]selector.Complex, 0, len(woven))
	for _, prefix := range woven {
		components := make([]selector.Component, 0, len(prefix)+1+len(after))
		components = append(components, prefix...)
		components = append(components, final)
		components = append(components, after...)
		out = append(out, selector.NewComplex(components...).WithLeading(leading))
	}
	return out
}

func flattenComponents(chains []selector.Complex) []selector.Component {
	var out []selector.Component
	for _, c := range chains {
		out = append(out, c.Components...)
	}
	return out
}

func setTrailingCombinator(c selector.Complex, trailing selector.Combinator) selector.Complex {
	if len(c.Components) == 0 {
		return c
	}
	components := make([]selector.Component, len(c.Components))
	copy(components, c.Components)
	last := components[len(components)-1]
	last.TrailingCombinator = trailing
	components[len(components)-1] = last
	return c.WithComponents(components)
}

// cartesianIndices enumerates the cartesian product of "pick one index
// in [0,lens[i])" across every slot, bounded by maxExtendCandidates.
func cartesianIndices(lens []int) [][]int {
	combos := [][]int{{}}
	for _, n := range lens {
		var next [][]int
	outer:
		for _, prefix := range combos {
			for idx := 0; idx < n; idx++ {
				combined := make([]int, len(prefix)+1)
				copy(combined, prefix)
				combined[len(prefix)] = idx
				next = append(next, combined)
				if len(next) >= maxExtendCandidates {
					break outer
				}
			}
		}
		combos = next
	}
	return combos
}

// simpleChoice is one option for a single simple selector within a
// compound being extended: either keep it exactly as written (self), or
// replace it via one specific registered extension.
type simpleChoice struct {
	self bool
	ext  *Extension
}

// extendCompound returns every complex-selector alternative a single
// compound selector could be rewritten to. It builds a per-simple option
// list (itself, plus one option per matching extension) and enumerates
// the cartesian product across the compound's simples, so a compound
// with two independently-extended simples ("'.a.b { } .x { @extend .a; }
// .y { @extend .b; }'") produces every mixed substitution — ".a.b" (self),
// ".a.y", ".b.x", and ".x.y" — not just the two single-simple
// substitutions. Each combination is folded into a candidate via
// unify.Complex, which also unifies multiple simultaneously-chosen
// extenders' ancestor chains (via weave.Weave) into one result.
// selfIndex names which returned candidate is the unchanged original, or
// -1 if the mode dropped it (selector-replace()'s compound-extendee
// case).
func (s *Store) extendCompound(compound selector.Compound, restrictTo []*Extension, ctx extendContext) (candidates []selector.Complex, selfIndex int, hit bool, diagErr *diag.Error) {
	base, pseudoHit, err := s.extendNestedPseudos(compound, restrictTo, ctx)
	if err != nil {
		return nil, -1, false, err
	}

	self := selector.NewComplex(selector.Component{Compound: base})
	hit = pseudoHit

	// selector-extend()/selector-replace() with a compound extendee (e.g.
	// ".a.b") only ever extends a compound that already carries every one
	// of the extendee's simples — a compound containing only ".a" is left
	// alone even though ".a" itself has a registered extension.
	if len(ctx.requiredTargets) > 0 && !compoundContainsAllTargets(base, ctx.requiredTargets) {
		return []selector.Complex{self}, 0, false, nil
	}

	perSimple := make([][]simpleChoice, len(base.Simples))
	anyExtension := false
	for i, simple := range base.Simples {
		opts := s.simpleOptions(simple, restrictTo, ctx.mode)
		perSimple[i] = opts
		for _, o := range opts {
			if o.ext != nil {
				anyExtension = true
			}
		}
	}

	if !anyExtension {
		return []selector.Complex{self}, 0, hit, nil
	}

	out := []selector.Complex{self}
	for _, combo := range cartesianChoices(perSimple) {
		if allSelf(combo) {
			continue
		}
		built, ok := s.buildCandidate(base, combo)
		if !ok {
			continue
		}
		hit = true
		out = append(out, built...)
	}

	// selector-replace() drops the unextended original in favor of pure
	// substitutions, per its contract ("replace", not "add an alternative
	// to"); every other caller (AddSelector, AddExtension propagation, and
	// selector-extend()) keeps it, since @extend only ever adds alternatives.
	if ctx.mode == modeReplace && len(out) > 1 {
		return out[1:], -1, hit, nil
	}
	return out, 0, hit, nil
}

// simpleOptions lists every way one simple selector within a compound
// could stand: itself (omitted when mode is modeReplace and at least one
// extension applies, matching "self omitted in replace mode"), plus one
// option per registered extension targeting it.
func (s *Store) simpleOptions(simple selector.Simple, restrictTo []*Extension, mode extendMode) []simpleChoice {
	bucket, ok := s.extensions[simpleKey(simple)]
	if !ok {
		return []simpleChoice{{self: true}}
	}

	var opts []simpleChoice
	if mode != modeReplace {
		opts = append(opts, simpleChoice{self: true})
	}
	for _, merged := range bucket {
		merged.Each(func(e *Extension) {
			if restrictTo != nil && !extensionIn(restrictTo, e) {
				return
			}
			if isSelfExtend(simple, e) {
				return
			}
			opts = append(opts, simpleChoice{ext: e})
		})
	}
	if len(opts) == 0 {
		opts = []simpleChoice{{self: true}}
	}
	return opts
}

func allSelf(combo []simpleChoice) bool {
	for _, c := range combo {
		if c.ext != nil {
			return false
		}
	}
	return true
}

// cartesianChoices enumerates the cartesian product across per-simple
// option lists, bounded by maxExtendCandidates.
func cartesianChoices(perSimple [][]simpleChoice) [][]simpleChoice {
	combos := [][]simpleChoice{{}}
	for _, options := range perSimple {
		var next [][]simpleChoice
	outer:
		for _, prefix := range combos {
			for _, opt := range options {
				combined := make([]simpleChoice, len(prefix)+1)
				copy(combined, prefix)
				combined[len(prefix)] = opt
				next = append(next, combined)
				if len(next) >= maxExtendCandidates {
					break outer
				}
			}
		}
		combos = next
	}
	return combos
}

// buildCandidate turns one cartesian combination of per-simple choices
// into the complex-selector alternative(s) it produces: the simples left
// at self contribute one compound of their own; every simple replaced by
// an extension contributes that extension's whole extender complex.
// unify.Complex intersects all of these — unifying their trailing
// compounds and weaving their ancestor chains together — exactly as it
// would combine two different rules' selectors that both have to match
// the same element.
func (s *Store) buildCandidate(base selector.Compound, combo []simpleChoice) ([]selector.Complex, bool) {
	var selfSimples []selector.Simple
	var chosen []*Extension
	for i, c := range combo {
		if c.self {
			selfSimples = append(selfSimples, base.Simples[i])
			continue
		}
		if !extensionIn(chosen, c.ext) {
			chosen = append(chosen, c.ext)
		}
	}
	if len(chosen) == 0 {
		return nil, false
	}

	list := make([]selector.Complex, 0, len(chosen)+1)
	if len(selfSimples) > 0 {
		list = append(list, selector.NewComplex(selector.Component{Compound: selector.NewCompound(selfSimples...)}))
	}
	for _, e := range chosen {
		list = append(list, e.Extender)
	}

	return unify.Complex(list)
}

// compoundContainsAllTargets reports whether every simple in targets is
// present, by value, somewhere in base — the gate for selector-extend()'s
// "allTargets" mode and selector-replace()'s compound-extendee case.
func compoundContainsAllTargets(base selector.Compound, targets []selector.Simple) bool {
	for _, t := range targets {
		found := false
		for _, simple := range base.Simples {
			if selector.Equal(simple, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func extensionIn(list []*Extension, e *Extension) bool {
	for _, o := range list {
		if o == e {
			return true
		}
	}
	return false
}

// isSelfExtend rejects the degenerate "a { @extend a }" case: extending a
// simple selector with itself would otherwise recurse forever as each
// propagation rediscovers the same match.
func isSelfExtend(simple selector.Simple, e *Extension) bool {
	if len(e.Extender.Components) != 1 {
		return false
	}
	only := e.Extender.Components[0].Compound
	if len(only.Simples) != 1 {
		return false
	}
	return selector.Equal(only.Simples[0], simple)
}

// extendNestedPseudos recurses into every selector-accepting pseudo inside
// compound (e.g. :is(...), :not(...), :nth-child(.. of S)) and rebuilds the
// compound with its inner lists extended. A modern pseudo (:is, :where,
// :has) present at all — whether or not extension actually changed it —
// is reported via hit, as is a hit inside any pseudo's inner list; other
// selector-accepting pseudos report hit only through their inner lists.
func (s *Store) extendNestedPseudos(compound selector.Compound, restrictTo []*Extension, ctx extendContext) (selector.Compound, bool, *diag.Error) {
	hit := false
	changed := false
	simples := make([]selector.Simple, len(compound.Simples))
	copy(simples, compound.Simples)

	for i, simple := range simples {
		p, ok := simple.(selector.Pseudo)
		if !ok || p.Selector == nil {
			continue
		}
		if p.Kind().IsModernPseudo() {
			hit = true
		}
		extended, innerHit, err := s.extendList(*p.Selector, restrictTo, extendContext{store: s, mode: ctx.mode, media: ctx.media, requiredTargets: ctx.requiredTargets})
		if err != nil {
			return selector.Compound{}, false, err
		}
		if innerHit {
			hit = true
		}
		if !extended.Equal(*p.Selector) {
			changed = true
			np := selector.NewPseudo(p.Span(), p.Name, p.NormalizedName, p.IsClass, p.Argument, &extended)
			simples[i] = np
		}
	}

	if !changed {
		return compound, hit, nil
	}
	return selector.NewCompound(simples...), hit, nil
}
