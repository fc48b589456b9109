package selector

import (
	"sync/atomic"

	"github.com/cssextend/selext/internal/diag"
)

var nextID uint64

// newID hands out a process-wide unique handle for every constructed node.
// It's the Go stand-in for the pointer/object identity the store's pseudo
// rule and sourceSpecificity map rely on (see base.Identity).
func newID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

func NewUniversal(span Span, ns Namespace) Universal {
	return Universal{base: base{span: span, id: newID()}, Namespace: ns}
}

func NewType(span Span, name QualifiedName) Type {
	return Type{base: base{span: span, id: newID()}, Name: name}
}

func NewClass(span Span, name string) Class {
	return Class{base: base{span: span, id: newID()}, Name: name}
}

func NewId(span Span, name string) Id {
	return Id{base: base{span: span, id: newID()}, Name: name}
}

func NewAttribute(span Span, qname QualifiedName, op AttrOp, value string, modifier byte) Attribute {
	return Attribute{base: base{span: span, id: newID()}, Qname: qname, Op: op, Value: value, Modifier: modifier}
}

func NewPlaceholder(span Span, name string, isPrivate bool) Placeholder {
	return Placeholder{base: base{span: span, id: newID()}, Name: name, IsPrivate: isPrivate}
}

func NewParent(span Span, suffix string) Parent {
	return Parent{base: base{span: span, id: newID()}, Suffix: suffix}
}

func NewPseudo(span Span, name, normalizedName string, isClass bool, argument string, inner *SelectorList) Pseudo {
	return Pseudo{
		base:           base{span: span, id: newID()},
		Name:           name,
		NormalizedName: normalizedName,
		IsClass:        isClass,
		Argument:       argument,
		Selector:       inner,
	}
}

func NewPseudoNth(span Span, name, normalizedName string, nth NthIndex) Pseudo {
	return Pseudo{
		base:           base{span: span, id: newID()},
		Name:           name,
		NormalizedName: normalizedName,
		IsClass:        true,
		Nth:            nth,
		Selector:       nth.Of,
	}
}

// Span is a re-export of diag.Span kept local to this package's
// constructors so call sites don't need to import diag just to build a
// selector node with no span ("selector.Span{}").
type Span = diag.Span

// NoSpan is the zero span: "no source location available".
var NoSpan = Span{}
