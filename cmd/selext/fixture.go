package main

import (
	"encoding/json"
	"fmt"

	"github.com/cssextend/selext/internal/selector"
)

// fixtureFile is the on-disk JSON shape a fixture decodes from: an ordered
// list of add-selector / add-extension operations to replay against one
// store, mirroring what a stylesheet evaluator would do one rule at a
// time. There is no parser here — every node names its own kind and
// carries only the fields that kind needs, so decoding is a direct
// structural walk rather than anything resembling CSS syntax.
type fixtureFile struct {
	Operations []fixtureOp `json:"operations"`
}

type fixtureOp struct {
	Op        string          `json:"op"` // "add-selector" | "add-extension"
	Selector  json.RawMessage `json:"selector,omitempty"`
	Extender  json.RawMessage `json:"extender,omitempty"`
	Target    json.RawMessage `json:"target,omitempty"`
	Media     string          `json:"media,omitempty"`
	Optional  bool            `json:"optional,omitempty"`
	Label     string          `json:"label,omitempty"`
}

// simpleNode is the builder-shim encoding of a single simple selector.
// "kind" selects which selector.New* constructor to call; the remaining
// fields are interpreted according to that kind and ignored otherwise.
type simpleNode struct {
	Kind      string       `json:"kind"`
	Name      string       `json:"name,omitempty"`
	IsPrivate bool         `json:"private,omitempty"`
	Suffix    string       `json:"suffix,omitempty"`
	IsClass   bool         `json:"isClass,omitempty"`
	Argument  string       `json:"argument,omitempty"`
	Selector  *complexList `json:"selector,omitempty"`
}

type compoundNode struct {
	Simples []simpleNode `json:"simples"`
}

type componentNode struct {
	Compound   compoundNode `json:"compound"`
	Combinator string       `json:"combinator,omitempty"` // "", ">", "+", "~"
}

type complexNode struct {
	Components []componentNode `json:"components"`
	Leading    string          `json:"leading,omitempty"`
}

type complexList struct {
	Complexes []complexNode `json:"complexes"`
}

func buildSimple(n simpleNode) (selector.Simple, error) {
	switch n.Kind {
	case "universal":
		return selector.NewUniversal(selector.NoSpan, selector.Namespace{}), nil
	case "type":
		return selector.NewType(selector.NoSpan, selector.QualifiedName{Name: n.Name}), nil
	case "class":
		return selector.NewClass(selector.NoSpan, n.Name), nil
	case "id":
		return selector.NewId(selector.NoSpan, n.Name), nil
	case "placeholder":
		return selector.NewPlaceholder(selector.NoSpan, n.Name, n.IsPrivate), nil
	case "parent":
		return selector.NewParent(selector.NoSpan, n.Suffix), nil
	case "pseudo":
		var inner *selector.SelectorList
		if n.Selector != nil {
			list, err := buildList(*n.Selector)
			if err != nil {
				return nil, err
			}
			inner = &list
		}
		return selector.NewPseudo(selector.NoSpan, n.Name, n.Name, n.IsClass, n.Argument, inner), nil
	default:
		return nil, fmt.Errorf("fixture: unknown simple selector kind %q", n.Kind)
	}
}

func buildCompound(n compoundNode) (selector.Compound, error) {
	simples := make([]selector.Simple, 0, len(n.Simples))
	for _, sn := range n.Simples {
		s, err := buildSimple(sn)
		if err != nil {
			return selector.Compound{}, err
		}
		simples = append(simples, s)
	}
	return selector.NewCompound(simples...), nil
}

func buildCombinator(s string) (selector.Combinator, error) {
	switch s {
	case "":
		return selector.NoCombinator, nil
	case ">":
		return selector.ChildOf, nil
	case "+":
		return selector.NextSibling, nil
	case "~":
		return selector.FollowingSibling, nil
	default:
		return selector.NoCombinator, fmt.Errorf("fixture: unknown combinator %q", s)
	}
}

func buildComplex(n complexNode) (selector.Complex, error) {
	components := make([]selector.Component, 0, len(n.Components))
	for _, cn := range n.Components {
		compound, err := buildCompound(cn.Compound)
		if err != nil {
			return selector.Complex{}, err
		}
		trailing, err := buildCombinator(cn.Combinator)
		if err != nil {
			return selector.Complex{}, err
		}
		components = append(components, selector.Component{Compound: compound, TrailingCombinator: trailing})
	}
	leading, err := buildCombinator(n.Leading)
	if err != nil {
		return selector.Complex{}, err
	}
	return selector.NewComplex(components...).WithLeading(leading), nil
}

func buildList(n complexList) (selector.List, error) {
	complexes := make([]selector.Complex, 0, len(n.Complexes))
	for _, cn := range n.Complexes {
		c, err := buildComplex(cn)
		if err != nil {
			return selector.List{}, err
		}
		complexes = append(complexes, c)
	}
	return selector.NewList(complexes...), nil
}

func decodeList(raw json.RawMessage) (selector.List, error) {
	var n complexList
	if err := json.Unmarshal(raw, &n); err != nil {
		return selector.List{}, err
	}
	return buildList(n)
}

func decodeSimple(raw json.RawMessage) (selector.Simple, error) {
	var n simpleNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return buildSimple(n)
}

func decodeFixture(data []byte) (fixtureFile, error) {
	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fixtureFile{}, err
	}
	return f, nil
}
