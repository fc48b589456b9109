package extend

import (
	"fmt"

	"github.com/cssextend/selext/internal/selector"
)

// simpleKey is the map key used for every SimpleSelector-indexed structure
// in the store (`selectors`, `extensions`, `extensionsByExtender`).
//
// It's value-based for ordinary simple selectors — two occurrences of
// ".foo" anywhere must collide — but selector-accepting pseudos are a
// deliberate exception: identity on the selector argument is used instead.
// Two pseudo selectors that happen to print the same but were built from
// separately-constructed inner lists are kept apart here, because the
// store needs to tell "the :is(...) that this extension targets" apart
// from "a different :is(...) elsewhere that merely looks the same" when
// propagating through extendPseudo. We implement that with the
// construction-time identity handle (see selector.base.Identity) rather
// than pointer identity, since Go selector values are copied freely.
func simpleKey(s selector.Simple) string {
	if p, ok := s.(selector.Pseudo); ok && p.Selector != nil {
		return fmt.Sprintf("pseudo#%d", p.Identity())
	}
	return selector.Key(s)
}
