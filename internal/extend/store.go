// Package extend implements the extension store and the modern-pseudo
// trim visitor: the graph of selectors and @extend declarations, the
// incremental propagation that keeps every affected selector list up to
// date as new input arrives, and the final pass that collapses redundant
// branches inside :is()/:where().
package extend

import (
	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/selector"
)

// Store is the mutable graph of selectors and the extensions declared
// against them. A zero Store is not valid; use New. Empty returns an
// immutable sentinel whose mutating methods fail instead of panicking,
// for callers that want a guaranteed no-op store (e.g. a module with no
// styles of its own).
type Store struct {
	immutable bool

	// selectors[simpleKey] is the set of cells whose current value
	// references that simple selector at any depth, including inside
	// selector-pseudos.
	selectors map[string]map[*Cell]struct{}

	// extensions[targetKey][extenderKey] is the (possibly merged) extension
	// declared for that (extender, target) pair.
	extensions map[string]map[string]*MergedExtension

	// extensionsByExtender[simpleKey] lists every Extension whose extender
	// contains that simple selector, original or produced by propagation.
	extensionsByExtender map[string][]*Extension

	// sourceSpecificity is identity-keyed (by construction handle, see
	// selector.base.Identity) rather than value-keyed: two ".foo"
	// selectors written in different places must not be confused even
	// though they compare equal.
	sourceSpecificity map[uint64]int

	// originals is the identity set of complex selectors that were written
	// directly in the source (or are a designated identity-preserving copy
	// of one), protected from trimming.
	originals map[uint64]struct{}

	selectorsWithModernPseudos  map[*Cell]struct{}
	extensionsWithModernPseudos map[*Extension]struct{}
}

func New() *Store {
	return &Store{
		selectors:                   map[string]map[*Cell]struct{}{},
		extensions:                  map[string]map[string]*MergedExtension{},
		extensionsByExtender:        map[string][]*Extension{},
		sourceSpecificity:           map[uint64]int{},
		originals:                   map[uint64]struct{}{},
		selectorsWithModernPseudos:  map[*Cell]struct{}{},
		extensionsWithModernPseudos: map[*Extension]struct{}{},
	}
}

// Empty returns an immutable sentinel store. AddSelector/AddExtension on it
// return an error instead of mutating global state.
func Empty() *Store {
	s := New()
	s.immutable = true
	return s
}

var errImmutable = diag.New(diag.UnsupportedOperation, diag.Span{}, "cannot mutate the empty/immutable extension store")

func (s *Store) recordSourceSpecificity(simple selector.Simple) {
	id := simple.Identity()
	if _, ok := s.sourceSpecificity[id]; !ok {
		s.sourceSpecificity[id] = selector.Of(simple)
	}
}

func (s *Store) sourceSpecificityOf(simple selector.Simple) int {
	if v, ok := s.sourceSpecificity[simple.Identity()]; ok {
		return v
	}
	return selector.Of(simple)
}

func maxSourceSpecificityOfComponents(s *Store, components []selector.Component) int {
	max := 0
	for _, comp := range components {
		for _, simple := range comp.Compound.Simples {
			if v := s.sourceSpecificityOf(simple); v > max {
				max = v
			}
		}
	}
	return max
}

// AddSelector registers a style rule's selector list with the store. If
// any extension has already been declared, the list is immediately
// rewritten to account for it; the returned View observes every future
// rewrite as more extensions arrive.
func (s *Store) AddSelector(list selector.List, media MediaContext) (View, *diag.Error) {
	if s.immutable {
		return View{}, errImmutable
	}

	for _, c := range list.Complexes {
		if hasVisibleComponent(c) {
			s.originals[c.Identity()] = struct{}{}
		}
	}

	value := list
	if len(s.extensions) > 0 {
		extended, _, err := s.extendList(list, nil, extendContext{store: s, mode: modeNormal})
		if err != nil {
			return View{}, err
		}
		value = extended
	}

	cell := &Cell{value: value, media: media}
	s.registerCell(cell)

	if containsModernPseudo(value) {
		cell.hasModernUse = true
		s.selectorsWithModernPseudos[cell] = struct{}{}
		for _, c := range value.Complexes {
			walkEverySimple(c, s.recordSourceSpecificity)
		}
	}

	return newView(cell), nil
}

// containsModernPseudo reports whether any selector in list carries an
// :is()/:where()/:has() anywhere in its tree, even nested arbitrarily deep
// inside other selector-accepting pseudos — such a list is a candidate for
// the modern-pseudo trim pass regardless of whether extension itself
// touched it, since that pass also collapses pseudo nesting authored
// directly in the source.
func containsModernPseudo(list selector.List) bool {
	found := false
	for _, c := range list.Complexes {
		walkEverySimple(c, func(simple selector.Simple) {
			if p, ok := simple.(selector.Pseudo); ok && p.Selector != nil && p.Kind().IsModernPseudo() {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}

func hasVisibleComponent(c selector.Complex) bool {
	for _, comp := range c.Components {
		for _, simple := range comp.Compound.Simples {
			if p, ok := simple.(selector.Placeholder); ok && p.IsPrivate {
				continue
			}
			return true
		}
	}
	return false
}

func walkEverySimple(c selector.Complex, fn func(selector.Simple)) {
	for _, comp := range c.Components {
		for _, simple := range comp.Compound.Simples {
			fn(simple)
			if p, ok := simple.(selector.Pseudo); ok && p.Selector != nil {
				for _, inner := range p.Selector.Complexes {
					walkEverySimple(inner, fn)
				}
			}
		}
	}
}

func (s *Store) registerCell(cell *Cell) {
	seen := map[*Cell]struct{}{}
	for _, c := range cell.value.Complexes {
		walkEverySimple(c, func(simple selector.Simple) {
			key := simpleKey(simple)
			set, ok := s.selectors[key]
			if !ok {
				set = map[*Cell]struct{}{}
				s.selectors[key] = set
			}
			if _, already := set[cell]; !already {
				set[cell] = struct{}{}
				seen[cell] = struct{}{}
			}
		})
	}
}

// AddExtension registers every complex selector of extender as an
// extension of target, then propagates it over every pre-existing
// extension and style-rule cell that target already reaches.
func (s *Store) AddExtension(extender selector.List, target selector.Simple, span diag.Span, media MediaContext, optional bool) *diag.Error {
	if s.immutable {
		return errImmutable
	}

	targetKey := simpleKey(target)
	bucket, ok := s.extensions[targetKey]
	if !ok {
		bucket = map[string]*MergedExtension{}
		s.extensions[targetKey] = bucket
	}

	var newOnes []*Extension
	for _, complex := range extender.Complexes {
		ext := newExtension(complex, target, span, media, optional)
		newOnes = append(newOnes, ext)

		extKey := simpleKey(firstSimpleOf(complex))
		merged, mErr := bucket[extKey].Merge(mergedLeaf(ext))
		if mErr != nil {
			return mErr
		}
		bucket[extKey] = merged

		walkEverySimple(complex, func(simple selector.Simple) {
			k := simpleKey(simple)
			s.extensionsByExtender[k] = append(s.extensionsByExtender[k], ext)
			s.recordSourceSpecificity(simple)
		})
	}

	if len(s.selectors[targetKey]) == 0 && len(s.extensionsByExtender[targetKey]) == 0 {
		// Nothing registered against this target yet; nothing to propagate.
		// A later AddSelector will pick these extensions up directly because
		// s.extensions is now non-empty.
		return nil
	}

	return s.propagate(targetKey, newOnes)
}

func firstSimpleOf(c selector.Complex) selector.Simple {
	for _, comp := range c.Components {
		if len(comp.Compound.Simples) > 0 {
			return comp.Compound.Simples[0]
		}
	}
	return nil
}

// propagate re-runs extension over every pre-existing extender and
// style-rule cell that target already reaches, in two passes: extenders
// first (discovering any extensions that creates), then cells.
func (s *Store) propagate(targetKey string, newExtensions []*Extension) *diag.Error {
	// Collect existing extensions whose target is targetKey into a local
	// slice first: iteration must not observe entries added to the same
	// target's source map while we're still walking it.
	var existing []*Extension
	for _, merged := range s.extensions[targetKey] {
		merged.Each(func(e *Extension) {
			for _, n := range newExtensions {
				if e == n {
					return
				}
			}
			existing = append(existing, e)
		})
	}

	grown := append([]*Extension(nil), newExtensions...)
	for _, e := range existing {
		produced, err := s.reExtendExtender(e, newExtensions)
		if err != nil {
			return err.WithAdditionalSpan(e.Span, "while re-extending this selector")
		}
		grown = append(grown, produced...)
	}

	for cell := range s.selectors[targetKey] {
		if err := s.reExtendCell(cell, grown); err != nil {
			return err.WithAdditionalSpan(cellSpanHint(cell), "while re-extending this selector")
		}
	}

	return nil
}

func cellSpanHint(*Cell) diag.Span { return diag.Span{} }

// reExtendExtender re-extends e's own extender using newExtensions,
// discovering any additional extensions this creates (an extender that
// becomes extendable in turn) so the second propagation pass sees them
// too.
func (s *Store) reExtendExtender(e *Extension, newExtensions []*Extension) ([]*Extension, *diag.Error) {
	results, _, err := s.extendComplex(e.Extender, newExtensions, extendContext{store: s, mode: modeNormal, media: e.MediaContext})
	if err != nil {
		return nil, err
	}
	var produced []*Extension
	for _, complex := range results {
		if complex.Identity() == e.Extender.Identity() {
			continue
		}
		produced = append(produced, newExtension(complex, e.Target, e.Span, e.MediaContext, true))
	}
	return produced, nil
}

func (s *Store) reExtendCell(cell *Cell, newExtensions []*Extension) *diag.Error {
	extended, _, err := s.extendList(cell.value, newExtensions, extendContext{store: s, mode: modeNormal, media: cell.media})
	if err != nil {
		return err
	}
	cell.value = extended
	s.registerCell(cell)
	if containsModernPseudo(extended) {
		cell.hasModernUse = true
		s.selectorsWithModernPseudos[cell] = struct{}{}
	}
	return nil
}

// AddExtensions folds other stores' extensions into this one: private
// placeholders never cross, target lookups re-run against this store's own
// cells and pre-existing extender chains, and only the incoming stores'
// own (newly declared) extensions are used — extensions already shared
// between two peer stores are not recomposed a second time.
func (s *Store) AddExtensions(others []*Store) *diag.Error {
	if s.immutable {
		return errImmutable
	}
	for _, other := range others {
		if err := s.addExtensionsFrom(other); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) addExtensionsFrom(other *Store) *diag.Error {
	for targetKey, bucket := range other.extensions {
		for extKey, merged := range bucket {
			var toAdd []*Extension
			merged.Each(func(e *Extension) {
				if isPrivatePlaceholder(e.Target) {
					return
				}
				toAdd = append(toAdd, e)
			})
			if len(toAdd) == 0 {
				continue
			}

			mine, ok := s.extensions[targetKey]
			if !ok {
				mine = map[string]*MergedExtension{}
				s.extensions[targetKey] = mine
			}
			var incoming *MergedExtension
			for _, e := range toAdd {
				var leafErr *diag.Error
				incoming, leafErr = incoming.Merge(mergedLeaf(e))
				if leafErr != nil {
					return leafErr
				}
			}
			merged2, mErr := mine[extKey].Merge(incoming)
			if mErr != nil {
				return mErr
			}
			mine[extKey] = merged2

			for _, e := range toAdd {
				walkEverySimple(e.Extender, func(simple selector.Simple) {
					k := simpleKey(simple)
					s.extensionsByExtender[k] = append(s.extensionsByExtender[k], e)
					s.recordSourceSpecificity(simple)
				})
			}

			if err := s.propagate(targetKey, toAdd); err != nil {
				return err
			}
		}
	}
	return nil
}

func isPrivatePlaceholder(s selector.Simple) bool {
	p, ok := s.(selector.Placeholder)
	return ok && p.IsPrivate
}

// ExtensionsWhereTarget yields every non-optional extension whose target
// satisfies pred, unmerging MergedExtensions along the way.
func (s *Store) ExtensionsWhereTarget(pred func(selector.Simple) bool) []*Extension {
	var out []*Extension
	for _, bucket := range s.extensions {
		for _, merged := range bucket {
			merged.Each(func(e *Extension) {
				if e.IsOptional || !pred(e.Target) {
					return
				}
				out = append(out, e)
			})
		}
	}
	return out
}

// Finalize surfaces MandatoryUnmet for any non-optional extension whose
// target was never registered against any selector.
func (s *Store) Finalize() []*diag.Error {
	var errs []*diag.Error
	for targetKey, bucket := range s.extensions {
		if len(s.selectors[targetKey]) > 0 {
			continue
		}
		for _, merged := range bucket {
			if merged.IsOptional() {
				continue
			}
			e := merged.first()
			errs = append(errs, diag.New(diag.MandatoryUnmet, e.Span,
				"this extension's target was never matched by any selector"))
		}
	}
	return errs
}

// TrimModernSelectors runs the modern-pseudo trim visitor over every cell
// whose selectors were rewritten inside a modern pseudo-class.
func (s *Store) TrimModernSelectors() {
	for cell := range s.selectorsWithModernPseudos {
		cell.value = trimModernPseudos(s, cell.value)
	}
}

// Clone deep-copies the store's internal maps, deduplicating shared cells,
// and returns the mapping from old cell to new cell so callers that hold
// Views can translate them.
func (s *Store) Clone() (*Store, map[*Cell]*Cell) {
	out := New()
	out.immutable = s.immutable

	cellMap := map[*Cell]*Cell{}
	cloneCell := func(c *Cell) *Cell {
		if nc, ok := cellMap[c]; ok {
			return nc
		}
		nc := &Cell{value: c.value.Clone(), media: c.media, hasModernUse: c.hasModernUse}
		cellMap[c] = nc
		return nc
	}

	for key, set := range s.selectors {
		ns := map[*Cell]struct{}{}
		for c := range set {
			ns[cloneCell(c)] = struct{}{}
		}
		out.selectors[key] = ns
	}
	for cell := range s.selectorsWithModernPseudos {
		out.selectorsWithModernPseudos[cloneCell(cell)] = struct{}{}
	}
	for k, v := range s.sourceSpecificity {
		out.sourceSpecificity[k] = v
	}
	for k := range s.originals {
		out.originals[k] = struct{}{}
	}
	for targetKey, bucket := range s.extensions {
		nb := map[string]*MergedExtension{}
		for extKey, merged := range bucket {
			nb[extKey] = merged
		}
		out.extensions[targetKey] = nb
	}
	for k, v := range s.extensionsByExtender {
		out.extensionsByExtender[k] = append([]*Extension(nil), v...)
	}

	return out, cellMap
}
