package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssextend/selext/internal/diag"
)

func TestSpanIsValid(t *testing.T) {
	assert.False(t, diag.Span{}.IsValid())
	assert.True(t, diag.Span{Len: 1}.IsValid())
	assert.True(t, diag.Span{Loc: diag.Loc{Start: 1}}.IsValid())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid extend target", diag.InvalidExtendTarget.String())
	assert.Equal(t, "cross-media extend", diag.CrossMediaExtend.String())
	assert.Equal(t, "mandatory extend unmet", diag.MandatoryUnmet.String())
	assert.Equal(t, "unsupported operation", diag.UnsupportedOperation.String())
	assert.Equal(t, "unknown error", diag.Kind(99).String())
}

func TestWithAdditionalSpanPreservesKindAndAppendsNote(t *testing.T) {
	base := diag.New(diag.MandatoryUnmet, diag.Span{Len: 3}, "extension target never matched")
	annotated := base.WithAdditionalSpan(diag.Span{Len: 5}, "declared here")

	require.Len(t, annotated.Notes, 1)
	assert.Equal(t, "declared here", annotated.Notes[0].Text)
	assert.Equal(t, diag.MandatoryUnmet, annotated.Kind)
	assert.Equal(t, base.Text, annotated.Text)
	assert.Empty(t, base.Notes, "original error must not be mutated")
}

func TestWithAdditionalSpanAccumulates(t *testing.T) {
	base := diag.New(diag.CrossMediaExtend, diag.Span{}, "conflict")
	once := base.WithAdditionalSpan(diag.Span{Len: 1}, "first")
	twice := once.WithAdditionalSpan(diag.Span{Len: 2}, "second")

	require.Len(t, twice.Notes, 2)
	assert.Equal(t, "first", twice.Notes[0].Text)
	assert.Equal(t, "second", twice.Notes[1].Text)
	assert.Len(t, once.Notes, 1, "earlier copy must not see later appends")
}

func TestErrorMessageIsText(t *testing.T) {
	err := diag.New(diag.ParentInCompound, diag.Span{}, "boom")
	assert.Equal(t, "boom", err.Error())
}

func TestDiscardSinkDropsMessages(t *testing.T) {
	var sink diag.Sink = diag.DiscardSink{}
	sink.Log(diag.Message{Severity: diag.Warning, Text: "ignored"})
}
