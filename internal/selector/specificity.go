package selector

// Specificity uses base 1000 per selector level (id = 1000 * class, class =
// 1000 * type). The engine never depends on the absolute magnitude of the
// numbers produced here, only on their relative ordering — so the constants
// below only need to preserve that ordering, not match any particular
// browser's specificity tuple encoding.
const (
	specUniversal     = 0
	specType          = 1
	specPseudoElement = 1
	specClass         = 1000
	specId            = 1000 * 1000
)

// Of computes the specificity of a single simple selector.
func Of(s Simple) int {
	switch v := s.(type) {
	case Universal:
		return specUniversal
	case Type:
		return specType
	case Class:
		return specClass
	case Attribute:
		return specClass
	case Id:
		return specId
	case Placeholder:
		return specClass
	case Parent:
		return 0
	case Pseudo:
		return pseudoSpecificity(v)
	default:
		return specClass
	}
}

func pseudoSpecificity(p Pseudo) int {
	if !p.IsClass {
		return specPseudoElement
	}
	switch p.Kind() {
	case PseudoNot, PseudoIs, PseudoMatches, PseudoAny, PseudoNthChild, PseudoNthLastChild:
		// Specificity is the max over the inner list. ":where" is deliberately
		// NOT in this group here; it falls through to the "otherwise base
		// 1000" case below, unlike real browser behavior where ":where"
		// always contributes zero.
		if p.Selector != nil {
			return maxListSpecificity(*p.Selector)
		}
		return specClass
	default:
		return specClass
	}
}

func maxListSpecificity(l List) int {
	max := 0
	for _, c := range l.Complexes {
		if s := OfComplex(c); s > max {
			max = s
		}
	}
	return max
}

// OfCompound sums the specificity of every simple selector in a compound.
func OfCompound(c Compound) int {
	total := 0
	for _, s := range c.Simples {
		total += Of(s)
	}
	return total
}

// OfComplex sums the specificity of every compound along a complex
// selector.
func OfComplex(c Complex) int {
	total := 0
	for _, comp := range c.Components {
		total += OfCompound(comp.Compound)
	}
	return total
}
