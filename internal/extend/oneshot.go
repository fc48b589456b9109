package extend

import (
	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/selector"
)

// Extend implements selector-extend(selector, extendee, source): every
// complex selector in source is applied wherever a compound in selector
// carries every one of extendee's simple selectors, keeping both the
// original branches and the substitutions produced. extendee must reduce
// to a single compound selector (e.g. parsed down from ".a.b", a compound
// carrying two simples) or InvalidExtendTarget is raised, mirroring Dart
// Sass's own "$extendee must be a compound selector" contract for the
// selector-extend() function.
func Extend(list selector.List, extendee selector.List, source selector.List, span diag.Span) (selector.List, *diag.Error) {
	targets, err := compoundTargets(extendee, span)
	if err != nil {
		return selector.List{}, err
	}
	return oneShot(list, targets, source, span, modeAllTargets)
}

// Replace implements selector-replace(selector, extendee, source): like
// Extend, but every compound carrying all of extendee's targets has its
// unextended form dropped in favor of pure substitutions.
func Replace(list selector.List, extendee selector.List, source selector.List, span diag.Span) (selector.List, *diag.Error) {
	targets, err := compoundTargets(extendee, span)
	if err != nil {
		return selector.List{}, err
	}
	return oneShot(list, targets, source, span, modeReplace)
}

// compoundTargets validates that extendee reduces to a single complex
// selector made of exactly one compound (no combinators), and returns that
// compound's simple selectors as the one-shot operation's targets.
func compoundTargets(extendee selector.List, span diag.Span) ([]selector.Simple, *diag.Error) {
	invalid := func() *diag.Error {
		return diag.New(diag.InvalidExtendTarget, span, "expected a single compound selector")
	}
	if len(extendee.Complexes) != 1 {
		return nil, invalid()
	}
	c := extendee.Complexes[0]
	if c.LeadingCombinator != selector.NoCombinator || len(c.Components) != 1 {
		return nil, invalid()
	}
	comp := c.Components[0]
	if comp.TrailingCombinator != selector.NoCombinator || len(comp.Compound.Simples) == 0 {
		return nil, invalid()
	}
	return comp.Compound.Simples, nil
}

// oneShot builds a throwaway store whose only extensions are "source
// extends each of targets", then runs list through it once. The store is
// discarded afterward; nothing here persists like AddExtension does.
func oneShot(list selector.List, targets []selector.Simple, source selector.List, span diag.Span, mode extendMode) (selector.List, *diag.Error) {
	s := New()
	for _, target := range targets {
		targetKey := simpleKey(target)
		bucket, ok := s.extensions[targetKey]
		if !ok {
			bucket = map[string]*MergedExtension{}
			s.extensions[targetKey] = bucket
		}
		for _, complex := range source.Complexes {
			e := newExtension(complex, target, span, nil, false)
			extKey := simpleKey(firstSimpleOf(complex))
			merged, mErr := bucket[extKey].Merge(mergedLeaf(e))
			if mErr != nil {
				return selector.List{}, mErr
			}
			bucket[extKey] = merged
		}
	}

	out, _, err := s.extendList(list, nil, extendContext{store: s, mode: mode, requiredTargets: targets})
	if err != nil {
		return selector.List{}, err
	}
	return out, nil
}
