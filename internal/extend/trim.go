package extend

import (
	"github.com/cssextend/selext/internal/selector"
	"github.com/cssextend/selext/internal/superselector"
)

// maxTrimCandidates is the "skip trimming past 100 alternatives" cutoff:
// the O(n^2) superselector comparison below is cheap for the handful of
// branches extension usually produces, but a pathological fan-out (many
// extenders of the same target, each producing several alternatives) isn't
// worth the quadratic cost, so trimming is skipped entirely past the
// threshold and the full (possibly redundant) set is kept.
const maxTrimCandidates = 100

// trim implements the generic redundancy-removal pass run after every
// extendList: a complex selector that was written directly in the source
// ("original", tracked by identity in the store) is never removed; any
// other complex selector is removed if some other retained candidate is a
// superselector of it with specificity at least as great — removing it
// changes nothing an element could match that the retained one wouldn't
// already match, and never lowers the rule's specificity on the page.
//
// Ties (two candidates that mutually subsume each other, e.g. duplicates)
// are broken by keeping the earlier one in declaration order, matching
// dart-sass's own trim pass.
func trim(s *Store, in []selector.Complex) []selector.Complex {
	if len(in) <= 1 || len(in) > maxTrimCandidates {
		return in
	}

	isOriginal := make([]bool, len(in))
	for i, c := range in {
		_, isOriginal[i] = s.originals[c.Identity()]
	}

	removed := make([]bool, len(in))
	for i := range in {
		if isOriginal[i] {
			continue
		}
		for j := range in {
			if j == i {
				continue
			}
			if !superselector.Complex(in[j], in[i]) || specificityOf(in[j]) < specificityOf(in[i]) {
				continue
			}
			// Mutual subsumption (effective duplicates): keep the earlier index.
			if superselector.Complex(in[i], in[j]) && specificityOf(in[i]) >= specificityOf(in[j]) && !isOriginal[j] {
				if i < j {
					continue
				}
			}
			removed[i] = true
			break
		}
	}

	out := make([]selector.Complex, 0, len(in))
	for i, c := range in {
		if !removed[i] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return in
	}
	return out
}

func specificityOf(c selector.Complex) int {
	return selector.OfComplex(c)
}
