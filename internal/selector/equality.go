package selector

// Equal compares two simple selectors by value, ignoring source spans.
// Pseudo-selector arguments are compared recursively by value here; the
// identity-based exception used for pseudo-selector arguments inside the
// extension store is implemented one layer up, in the extend package's
// map keys — this function always answers the structural question "would
// these two selectors serialize the same way".
func Equal(a, b Simple) bool {
	switch av := a.(type) {
	case Universal:
		bv, ok := b.(Universal)
		return ok && av.Namespace.Equal(bv.Namespace)
	case Type:
		bv, ok := b.(Type)
		return ok && av.Name.Equal(bv.Name)
	case Class:
		bv, ok := b.(Class)
		return ok && av.Name == bv.Name
	case Id:
		bv, ok := b.(Id)
		return ok && av.Name == bv.Name
	case Attribute:
		bv, ok := b.(Attribute)
		return ok && av.Qname.Equal(bv.Qname) && av.Op == bv.Op && av.Value == bv.Value && av.Modifier == bv.Modifier
	case Placeholder:
		bv, ok := b.(Placeholder)
		return ok && av.Name == bv.Name && av.IsPrivate == bv.IsPrivate
	case Parent:
		bv, ok := b.(Parent)
		return ok && av.Suffix == bv.Suffix
	case Pseudo:
		bv, ok := b.(Pseudo)
		if !ok || av.NormalizedName != bv.NormalizedName || av.IsClass != bv.IsClass || av.Argument != bv.Argument {
			return false
		}
		if !av.Nth.Equal(bv.Nth) {
			return false
		}
		if (av.Selector == nil) != (bv.Selector == nil) {
			return false
		}
		if av.Selector == nil {
			return true
		}
		return av.Selector.Equal(*bv.Selector)
	default:
		return false
	}
}

func (c Compound) Equal(o Compound) bool {
	if len(c.Simples) != len(o.Simples) {
		return false
	}
	for i := range c.Simples {
		if !Equal(c.Simples[i], o.Simples[i]) {
			return false
		}
	}
	return true
}

func (c Component) Equal(o Component) bool {
	return c.TrailingCombinator == o.TrailingCombinator && c.Compound.Equal(o.Compound)
}

func (c Complex) Equal(o Complex) bool {
	if c.LeadingCombinator != o.LeadingCombinator || len(c.Components) != len(o.Components) {
		return false
	}
	for i := range c.Components {
		if !c.Components[i].Equal(o.Components[i]) {
			return false
		}
	}
	return true
}

func (l List) Equal(o List) bool {
	if len(l.Complexes) != len(o.Complexes) {
		return false
	}
	for i := range l.Complexes {
		if !l.Complexes[i].Equal(o.Complexes[i]) {
			return false
		}
	}
	return true
}
