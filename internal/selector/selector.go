// Package selector is the immutable tagged representation of CSS selectors
// used throughout the extension engine: simple, compound, and complex
// selectors, plus the selector lists that group them. It also carries the
// pure, context-free operations defined directly on that representation —
// specificity and value equality — that every other package in this module
// builds on.
//
// Selectors here are deliberately NOT produced by a parser in this package;
// they arrive fully formed from an external parser (out of scope). None of
// the engine packages serialize them back to CSS text; only the cmd/selext
// driver renders them as plain text for its output dump. Equality
// ignores source spans and is value-based on every other field, with one
// documented exception for pseudo-selector identity (see Store in the
// extend package).
package selector

import "github.com/cssextend/selext/internal/diag"

// Namespace is a discriminated value for the namespace component of a
// qualified or universal selector.
type Namespace struct {
	Kind NamespaceKind
	Name string // only meaningful when Kind == NamedNamespace
}

type NamespaceKind uint8

const (
	DefaultNamespace NamespaceKind = iota
	NoNamespace
	AnyNamespace
	NamedNamespace
)

func (n Namespace) Equal(o Namespace) bool {
	return n.Kind == o.Kind && (n.Kind != NamedNamespace || n.Name == o.Name)
}

// QualifiedName is a (name, namespace) pair, as used by type selectors and
// attribute selectors.
type QualifiedName struct {
	Name      string
	Namespace Namespace
}

func (q QualifiedName) Equal(o QualifiedName) bool {
	return q.Name == o.Name && q.Namespace.Equal(o.Namespace)
}

// AttrOp is the comparison operator of an attribute selector. The zero
// value means "no operator", i.e. a bare presence check such as "[attr]".
type AttrOp uint8

const (
	NoOp AttrOp = iota
	Equal
	Includes
	Dash
	Prefix
	Suffix
	Substring
)

// Simple is the tagged union of simple-selector variants. The interface is
// never invoked directly; its sole purpose is to close the set of concrete
// types in Go's type system so that a type switch over Simple is
// exhaustive-checkable by inspection.
type Simple interface {
	isSimple()
	// Span returns the optional source span this node was built with. The
	// zero Span means "no span available"; it never affects Equal.
	Span() diag.Span
	// Identity returns a stable per-construction handle; see base.Identity.
	Identity() uint64
}

type base struct {
	span diag.Span
	id   uint64
}

func (b base) Span() diag.Span { return b.span }

// Identity returns a handle stable across value copies of this exact
// selector node — two structurally identical but separately-constructed
// selectors get different identities. This stands in for the reference
// equality the source language's pseudo-identity rule relies on (see
// extend.Store): Go values don't carry address identity that survives
// being copied into a map or slice, so construction assigns a sequence
// number instead (Design Notes, "identity hashing for originals").
func (b base) Identity() uint64 { return b.id }

// Universal matches any element in Namespace.
type Universal struct {
	base
	Namespace Namespace
}

// Type matches elements with a given qualified element name.
type Type struct {
	base
	Name QualifiedName
}

// Class matches elements carrying a given class.
type Class struct {
	base
	Name string
}

// Id matches elements with a given id.
type Id struct {
	base
	Name string
}

// Attribute matches elements whose attribute satisfies an optional
// comparison. Op is set iff Value is meaningful: Op == NoOp means a bare
// "[attr]" presence check and Value is ignored.
type Attribute struct {
	base
	Qname    QualifiedName
	Op       AttrOp
	Value    string
	Modifier byte // 0, 'i'/'I' (case-insensitive), or 's'/'S' (case-sensitive)
}

// Placeholder is a Sass "%placeholder" selector. It is invisible: it is
// never emitted by a serializer, and a private placeholder (leading "-" or
// "_") may not cross module boundaries. The core itself does not enforce
// the module boundary — that's the evaluator's job — but it does refuse to
// unify placeholders with anything (see the unify package).
type Placeholder struct {
	base
	Name      string
	IsPrivate bool
}

// Parent is the Sass "&" parent-selector reference. It must be resolved
// away by the caller before a selector reaches this engine; unify refuses
// to merge a Parent simple selector (SimpleIntoCompound reports failure),
// and nothing in this module raises diag.ParentInCompound for it.
type Parent struct {
	base
	Suffix string // optional literal text appended directly after "&"
}

// PseudoKind names the pseudo-classes the core treats specially. Every
// other pseudo-class or pseudo-element name falls back to PseudoOther and
// is handled generically.
type PseudoKind uint8

const (
	PseudoOther PseudoKind = iota
	PseudoNot
	PseudoIs
	PseudoMatches
	PseudoWhere
	PseudoAny
	PseudoHas
	PseudoHost
	PseudoHostContext
	PseudoCurrent
	PseudoSlotted
	PseudoNthChild
	PseudoNthLastChild
)

func KindForName(normalizedName string) PseudoKind {
	switch normalizedName {
	case "not":
		return PseudoNot
	case "is":
		return PseudoIs
	case "matches":
		return PseudoMatches
	case "where":
		return PseudoWhere
	case "any":
		return PseudoAny
	case "has":
		return PseudoHas
	case "host":
		return PseudoHost
	case "host-context":
		return PseudoHostContext
	case "current":
		return PseudoCurrent
	case "slotted":
		return PseudoSlotted
	case "nth-child":
		return PseudoNthChild
	case "nth-last-child":
		return PseudoNthLastChild
	default:
		return PseudoOther
	}
}

// IsSubSelectorPseudo reports whether the pseudo is one of the kinds that
// accept an inner selector list and decide a superselector
// relationship by deferring to it: is/matches/where/any/nth-child/
// nth-last-child.
func (k PseudoKind) IsSubSelectorPseudo() bool {
	switch k {
	case PseudoIs, PseudoMatches, PseudoWhere, PseudoAny, PseudoNthChild, PseudoNthLastChild:
		return true
	default:
		return false
	}
}

// IsModernPseudo reports whether the pseudo is one of the modern selector
// groups whose stored form may be collapsed and trimmed by the
// modern-pseudo trim visitor.
func (k PseudoKind) IsModernPseudo() bool {
	switch k {
	case PseudoIs, PseudoWhere, PseudoHas:
		return true
	default:
		return false
	}
}

// Pseudo is a pseudo-class or pseudo-element. Selector is present only for
// selector-accepting pseudos (":not", ":is", ":has", ...); Argument holds
// the raw, opaque argument for anything else (e.g. ":nth-child(2n+1)"'s
// "2n+1" is carried by NthIndex instead, and "lang(en)"'s "en" lives here).
type Pseudo struct {
	base
	Name           string // as written, e.g. "Is" in nonstandard casing
	NormalizedName string // lowercased, used for all comparisons
	IsClass        bool   // false for pseudo-elements ("::before")
	Argument       string
	Selector       *SelectorList // non-nil iff this pseudo accepts a selector list
	Nth            NthIndex      // only meaningful for nth-child/nth-last-child
}

func (p Pseudo) Kind() PseudoKind {
	return KindForName(p.NormalizedName)
}

// NthIndex is the parsed "An+B" microsyntax argument to :nth-child() and
// friends, plus the optional "of <selector-list>" clause.
type NthIndex struct {
	A  int
	B  int
	Of *SelectorList
}

func (n NthIndex) Equal(o NthIndex) bool {
	if n.A != o.A || n.B != o.B {
		return false
	}
	if (n.Of == nil) != (o.Of == nil) {
		return false
	}
	if n.Of == nil {
		return true
	}
	return n.Of.Equal(*o.Of)
}

func (Universal) isSimple()   {}
func (Type) isSimple()        {}
func (Class) isSimple()       {}
func (Id) isSimple()          {}
func (Attribute) isSimple()   {}
func (Placeholder) isSimple() {}
func (Parent) isSimple()      {}
func (Pseudo) isSimple()      {}
