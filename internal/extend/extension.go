package extend

import (
	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/selector"
)

// Extension records one "extender { @extend target }" declaration.
type Extension struct {
	Extender     selector.Complex
	Target       selector.Simple
	Span         diag.Span
	MediaContext MediaContext
	IsOptional   bool
	Specificity  int
	IsOriginal   bool
}

func newExtension(extender selector.Complex, target selector.Simple, span diag.Span, media MediaContext, optional bool) *Extension {
	return &Extension{
		Extender:     extender,
		Target:       target,
		Span:         span,
		MediaContext: media,
		IsOptional:   optional,
		Specificity:  selector.OfComplex(extender),
		IsOriginal:   true,
	}
}

// MergedExtension is a binary tree of Extensions that share the same
// (extender, target) pair, declared more than once across the source.
// Marking any leaf mandatory marks every leaf in the tree mandatory: once
// one declaration insists "@extend foo" (without "!optional"), the pair as
// a whole is no longer allowed to go unmatched.
type MergedExtension struct {
	leaf        *Extension
	left, right *MergedExtension
}

func mergedLeaf(e *Extension) *MergedExtension {
	return &MergedExtension{leaf: e}
}

// Merge combines two MergedExtensions for the same (extender, target)
// pair. If the two disagree on media context, it returns a CrossMediaExtend
// error instead of silently picking one.
func (m *MergedExtension) Merge(o *MergedExtension) (*MergedExtension, *diag.Error) {
	if m == nil {
		return o, nil
	}
	if o == nil {
		return m, nil
	}
	if err := m.checkMediaAgreement(o); err != nil {
		return nil, err
	}
	return &MergedExtension{left: m, right: o}, nil
}

func (m *MergedExtension) checkMediaAgreement(o *MergedExtension) *diag.Error {
	var mediaOf func(*MergedExtension) (MediaContext, *Extension)
	mediaOf = func(n *MergedExtension) (MediaContext, *Extension) {
		if n.leaf != nil {
			return n.leaf.MediaContext, n.leaf
		}
		return mediaOf(n.left)
	}
	mm, mleaf := mediaOf(m)
	om, _ := mediaOf(o)
	if mm == nil && om == nil {
		return nil
	}
	if !mediaEqual(mm, om) {
		return diag.New(diag.CrossMediaExtend, mleaf.Span, "two @extend declarations for the same target disagree on their enclosing @media context")
	}
	return nil
}

func (m *MergedExtension) MarkMandatory() {
	if m == nil {
		return
	}
	if m.leaf != nil {
		m.leaf.IsOptional = false
		return
	}
	m.left.MarkMandatory()
	m.right.MarkMandatory()
}

func (m *MergedExtension) IsOptional() bool {
	if m == nil {
		return true
	}
	if m.leaf != nil {
		return m.leaf.IsOptional
	}
	return m.left.IsOptional() && m.right.IsOptional()
}

// Each walks every leaf Extension in declaration order.
func (m *MergedExtension) Each(fn func(*Extension)) {
	if m == nil {
		return
	}
	if m.leaf != nil {
		fn(m.leaf)
		return
	}
	m.left.Each(fn)
	m.right.Each(fn)
}

func (m *MergedExtension) first() *Extension {
	if m.leaf != nil {
		return m.leaf
	}
	return m.left.first()
}
