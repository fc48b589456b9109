package extend

import "github.com/cssextend/selext/internal/selector"

// Cell is a mutable handle to one style rule's selector list, exclusively
// owned by the Store that created it. Its value is rewritten in place as
// new extensions arrive (addExtension re-running extendList over it);
// external code only ever sees it through a read-only View, whose
// observations stay consistent because every mutation happens
// synchronously.
type Cell struct {
	value        selector.List
	media        MediaContext
	hasModernUse bool
}

// View is the read-only handle addSelector hands back to callers. It never
// exposes a way to mutate the cell directly; the store is the only writer.
type View struct {
	cell *Cell
}

func (v View) List() selector.List {
	return v.cell.value
}

func (v View) MediaContext() MediaContext {
	return v.cell.media
}

func newView(c *Cell) View {
	return View{cell: c}
}
