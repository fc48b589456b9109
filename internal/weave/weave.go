// Package weave combines several expansions of a complex selector's
// ancestor chain into every valid interleaving that a real combined
// selector could represent.
//
// Concretely: when two rules are unified (e.g. ".a .b" extending into a
// context that also needs to satisfy ".x .y"), each operand contributes a
// chain of ancestor components. The final trailing compound is unified
// separately (that's the unify package's job); Weave is only responsible
// for producing every legal ordering of the ancestor prefixes.
package weave

import "github.com/cssextend/selext/internal/selector"

// Weave takes one ancestor-chain prefix per operand (paths) and returns
// every valid interleaving of them. It returns ok == false only when every
// candidate is eliminated — in this implementation that happens only for
// a degenerate call with no operands at all; combinator compatibility
// between components from different operands is preserved by construction
// (see block splitting below), so it can never itself invalidate a result.
func Weave(paths [][]selector.Component, forceLineBreak bool) (out [][]selector.Component, ok bool) {
	if len(paths) == 0 {
		return nil, false
	}

	acc := [][]selector.Component{cloneChain(paths[0])}
	for _, next := range paths[1:] {
		var merged [][]selector.Component
		for _, prefix := range acc {
			merged = append(merged, weaveTwo(prefix, next)...)
			if len(merged) > maxWeaveCandidates {
				// Allocation budget guard: degenerate inputs (selectors nested
				// many layers deep, each multiplying the candidate count) must
				// degrade gracefully instead of enumerating an exponential blowup.
				merged = merged[:maxWeaveCandidates]
				break
			}
		}
		acc = merged
	}

	if forceLineBreak {
		// Line-break propagation is cosmetic serialization state the core
		// threads through but never inspects itself; nothing to do here beyond
		// accepting the flag so callers can pass it uniformly.
		_ = forceLineBreak
	}

	return acc, len(acc) > 0
}

// maxWeaveCandidates bounds the number of interleavings produced for a
// single weave call, mirroring the 100-selector trim short-circuit
// described for the trimming policy: past this point we stop trying to be
// exhaustive and just return what we have.
const maxWeaveCandidates = 512

// weaveTwo interleaves two ancestor chains, preserving the relative order
// within each chain. Components joined by anything other than the
// (implicit) descendant combinator are glued into an atomic block: an
// explicit ">"/"+"/"~" combinator requires its two endpoints stay directly
// adjacent in the output, so only runs ending on a descendant combinator
// are valid interleaving boundaries.
func weaveTwo(a, b []selector.Component) [][]selector.Component {
	blocksA := blocksOf(a)
	blocksB := blocksOf(b)

	var out [][]selector.Component
	for _, shuffle := range shuffleBlocks(blocksA, blocksB) {
		var flat []selector.Component
		for _, block := range shuffle {
			flat = append(flat, block...)
		}
		out = append(out, flat)
	}
	return out
}

// blocksOf splits a chain into maximal runs that must stay contiguous: a
// run ends right after a component whose TrailingCombinator is
// NoCombinator (a descendant combinator, the only one that tolerates
// interleaved ancestors from another chain).
func blocksOf(chain []selector.Component) [][]selector.Component {
	if len(chain) == 0 {
		return nil
	}
	var blocks [][]selector.Component
	start := 0
	for i, c := range chain {
		if c.TrailingCombinator == selector.NoCombinator {
			blocks = append(blocks, chain[start:i+1])
			start = i + 1
		}
	}
	if start < len(chain) {
		blocks = append(blocks, chain[start:])
	}
	return blocks
}

// shuffleBlocks returns every interleaving of a and b that preserves the
// relative order of elements within each, i.e. every way to riffle-shuffle
// the two decks back together.
func shuffleBlocks(a, b [][]selector.Component) [][][]selector.Component {
	if len(a) == 0 {
		return [][][]selector.Component{cloneBlocks(b)}
	}
	if len(b) == 0 {
		return [][][]selector.Component{cloneBlocks(a)}
	}

	var out [][][]selector.Component
	for _, rest := range shuffleBlocks(a[1:], b) {
		out = append(out, prependBlock(a[0], rest))
	}
	for _, rest := range shuffleBlocks(a, b[1:]) {
		out = append(out, prependBlock(b[0], rest))
	}
	return out
}

func prependBlock(block []selector.Component, rest [][]selector.Component) [][]selector.Component {
	out := make([][]selector.Component, 0, len(rest)+1)
	out = append(out, block)
	out = append(out, rest...)
	return out
}

func cloneBlocks(blocks [][]selector.Component) [][]selector.Component {
	out := make([][]selector.Component, len(blocks))
	copy(out, blocks)
	return out
}

func cloneChain(chain []selector.Component) []selector.Component {
	out := make([]selector.Component, len(chain))
	copy(out, chain)
	return out
}
