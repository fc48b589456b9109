// Command selext is a thin driver over internal/extend: it replays a JSON
// fixture of add-selector / add-extension operations against one store in
// order, then dumps every surviving selector list to stdout. It exists so
// the extension engine can be exercised end to end by something other
// than a unit test, without requiring the tokenizer, evaluator, or CSS
// serializer this module deliberately leaves out of scope.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cssextend/selext/internal/diag"
	"github.com/cssextend/selext/internal/extend"
	"github.com/cssextend/selext/internal/selector"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("selext", flag.ContinueOnError)
	fixturePath := fs.String("fixture", "", "path to a JSON fixture of add-selector/add-extension operations")
	dumpSpecificity := fs.Bool("dump-specificity", false, "print each surviving complex selector's specificity alongside it")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "selext: -fixture <path> is required")
		return 1
	}

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selext: %s\n", err)
		return 1
	}

	fixture, err := decodeFixture(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selext: invalid fixture: %s\n", err)
		return 1
	}

	store := extend.New()
	views, errs := replay(store, fixture)
	for _, e := range errs {
		reportError(e)
	}
	if len(errs) > 0 {
		return 1
	}

	if finalErrs := store.Finalize(); len(finalErrs) > 0 {
		for _, e := range finalErrs {
			reportError(e)
		}
		return 1
	}
	store.TrimModernSelectors()

	dump(views, *dumpSpecificity)
	return 0
}

type namedView struct {
	label string
	view  extend.View
}

// replay applies every fixture operation to store in file order, exactly
// as a stylesheet evaluator driving this engine rule-by-rule would. Views
// returned by add-selector operations are kept in declaration order so
// dump can print them the same way regardless of how propagation later
// rewrites their contents.
func replay(store *extend.Store, fixture fixtureFile) ([]namedView, []*diag.Error) {
	var views []namedView
	var errs []*diag.Error

	for i, op := range fixture.Operations {
		label := op.Label
		if label == "" {
			label = fmt.Sprintf("rule[%d]", i)
		}

		switch op.Op {
		case "add-selector":
			list, err := decodeList(op.Selector)
			if err != nil {
				fmt.Fprintf(os.Stderr, "selext: %s: %s\n", label, err)
				return nil, errs
			}
			view, dErr := store.AddSelector(list, mediaFor(op.Media))
			if dErr != nil {
				errs = append(errs, dErr)
				continue
			}
			views = append(views, namedView{label: label, view: view})

		case "add-extension":
			extender, err := decodeList(op.Extender)
			if err != nil {
				fmt.Fprintf(os.Stderr, "selext: %s: %s\n", label, err)
				return nil, errs
			}
			target, err := decodeSimple(op.Target)
			if err != nil {
				fmt.Fprintf(os.Stderr, "selext: %s: %s\n", label, err)
				return nil, errs
			}
			dErr := store.AddExtension(extender, target, selector.NoSpan, mediaFor(op.Media), op.Optional)
			if dErr != nil {
				errs = append(errs, dErr)
			}

		default:
			fmt.Fprintf(os.Stderr, "selext: %s: unknown op %q\n", label, op.Op)
			return nil, errs
		}
	}

	return views, errs
}

// stringMedia is the driver's own minimal MediaContext: an opaque chain of
// enclosing @media queries is, per the core's design, compared only for
// equality, never interpreted, so a bare string is enough for a fixture
// that never needs to express real media-query nesting.
type stringMedia string

func (m stringMedia) Equal(other extend.MediaContext) bool {
	o, ok := other.(stringMedia)
	return ok && m == o
}

func mediaFor(s string) extend.MediaContext {
	if s == "" {
		return nil
	}
	return stringMedia(s)
}

func reportError(e *diag.Error) {
	fmt.Fprintf(os.Stderr, "selext: %s: %s\n", e.Kind, e.Text)
}

func dump(views []namedView, dumpSpecificity bool) {
	for _, nv := range views {
		list := nv.view.List()
		fmt.Printf("%s:\n", nv.label)
		for _, c := range list.Complexes {
			fmt.Printf("  %s", renderComplex(c))
			if dumpSpecificity {
				fmt.Printf("  /* specificity %d */", selector.OfComplex(c))
			}
			fmt.Println()
		}
	}
}

func renderComplex(c selector.Complex) string {
	var b strings.Builder
	if c.LeadingCombinator != selector.NoCombinator {
		b.WriteString(c.LeadingCombinator.String())
		b.WriteByte(' ')
	}
	for i, comp := range c.Components {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(renderCompound(comp.Compound))
		if comp.TrailingCombinator != selector.NoCombinator {
			b.WriteByte(' ')
			b.WriteString(comp.TrailingCombinator.String())
		}
	}
	return b.String()
}

func renderCompound(c selector.Compound) string {
	var b strings.Builder
	for _, s := range c.Simples {
		b.WriteString(renderSimple(s))
	}
	return b.String()
}

func renderSimple(s selector.Simple) string {
	switch v := s.(type) {
	case selector.Universal:
		return "*"
	case selector.Type:
		return v.Name.Name
	case selector.Class:
		return "." + v.Name
	case selector.Id:
		return "#" + v.Name
	case selector.Placeholder:
		return "%" + v.Name
	case selector.Parent:
		return "&" + v.Suffix
	case selector.Pseudo:
		return renderPseudo(v)
	default:
		return "?"
	}
}

func renderPseudo(p selector.Pseudo) string {
	prefix := ":"
	if !p.IsClass {
		prefix = "::"
	}
	if p.Selector == nil {
		if p.Argument != "" {
			return prefix + p.Name + "(" + p.Argument + ")"
		}
		return prefix + p.Name
	}
	parts := make([]string, 0, len(p.Selector.Complexes))
	for _, inner := range p.Selector.Complexes {
		parts = append(parts, renderComplex(inner))
	}
	return prefix + p.Name + "(" + strings.Join(parts, ", ") + ")"
}
