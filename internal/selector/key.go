package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Key returns a canonical, value-based string encoding of a simple
// selector, suitable for use as a map key anywhere two selectors that
// Equal() each other must also collide as keys. It deliberately ignores
// spans, matching Equal's contract.
//
// This is a value key. The extend package layers an additional,
// identity-based discriminant for pseudo-selector arguments on top of
// this where identity on the selector argument, not its printed value, is
// what the store needs — see extend.simpleKey.
func Key(s Simple) string {
	var b strings.Builder
	writeKey(&b, s)
	return b.String()
}

func writeKey(b *strings.Builder, s Simple) {
	switch v := s.(type) {
	case Universal:
		b.WriteString("U:")
		writeNamespaceKey(b, v.Namespace)
	case Type:
		b.WriteString("T:")
		writeQNameKey(b, v.Name)
	case Class:
		b.WriteString(".")
		b.WriteString(v.Name)
	case Id:
		b.WriteString("#")
		b.WriteString(v.Name)
	case Attribute:
		b.WriteString("[")
		writeQNameKey(b, v.Qname)
		b.WriteString(strconv.Itoa(int(v.Op)))
		b.WriteString("=")
		b.WriteString(v.Value)
		b.WriteByte(v.Modifier)
		b.WriteString("]")
	case Placeholder:
		b.WriteString("%")
		if v.IsPrivate {
			b.WriteString("!")
		}
		b.WriteString(v.Name)
	case Parent:
		b.WriteString("&")
		b.WriteString(v.Suffix)
	case Pseudo:
		writePseudoKey(b, v)
	default:
		fmt.Fprintf(b, "?%T", s)
	}
}

func writeNamespaceKey(b *strings.Builder, n Namespace) {
	switch n.Kind {
	case DefaultNamespace:
		b.WriteString("d")
	case NoNamespace:
		b.WriteString("n")
	case AnyNamespace:
		b.WriteString("*")
	case NamedNamespace:
		b.WriteString("{")
		b.WriteString(n.Name)
		b.WriteString("}")
	}
}

func writeQNameKey(b *strings.Builder, q QualifiedName) {
	writeNamespaceKey(b, q.Namespace)
	b.WriteString("|")
	b.WriteString(q.Name)
}

func writePseudoKey(b *strings.Builder, p Pseudo) {
	if p.IsClass {
		b.WriteString(":")
	} else {
		b.WriteString("::")
	}
	b.WriteString(p.NormalizedName)
	b.WriteString("(")
	b.WriteString(p.Argument)
	if p.Nth != (NthIndex{}) {
		fmt.Fprintf(b, "%dn%+d", p.Nth.A, p.Nth.B)
	}
	if p.Selector != nil {
		for i, c := range p.Selector.Complexes {
			if i > 0 {
				b.WriteString(",")
			}
			writeComplexKey(b, c)
		}
	}
	b.WriteString(")")
}

func writeComplexKey(b *strings.Builder, c Complex) {
	if c.LeadingCombinator != NoCombinator {
		b.WriteString(c.LeadingCombinator.String())
	}
	for _, comp := range c.Components {
		for _, s := range comp.Compound.Simples {
			writeKey(b, s)
		}
		b.WriteString(comp.TrailingCombinator.String())
	}
}
