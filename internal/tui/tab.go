package tui

import (
	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/denismitr/estatebook/view"
)

// tab is the view state of one dataset.
type tab struct {
	dataset schema.Dataset
	schema  *schema.Schema
	query   view.Query
	options []view.Option
	table   view.Table
	cursor  int
}

func newTab(d schema.Dataset) *tab {
	return &tab{dataset: d, schema: schema.For(d)}
}

// refresh recomputes the filter options and rows from recs.
func (t *tab) refresh(recs []*record.Record) {
	t.options = view.StatusOptions(t.schema, recs)
	t.query = t.query.Reconcile(t.options)
	t.table = view.Render(t.schema, recs, t.query)
	t.clamp()
}

func (t *tab) clamp() {
	if t.cursor >= len(t.table.Rows) {
		t.cursor = len(t.table.Rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *tab) selected() (view.Row, bool) {
	if len(t.table.Rows) == 0 {
		return view.Row{}, false
	}
	return t.table.Rows[t.cursor], true
}

func (t *tab) move(delta int) {
	t.cursor += delta
	t.clamp()
}

// nextStatus advances the status filter to the following option, wrapping
// around to "All Status".
func (t *tab) nextStatus() {
	if len(t.options) == 0 {
		return
	}

	next := 0
	for i, o := range t.options {
		if o.Value == t.query.Status {
			next = (i + 1) % len(t.options)
			break
		}
	}
	t.query.Status = t.options[next].Value
}

func (t *tab) statusLabel() string {
	for _, o := range t.options {
		if o.Value == t.query.Status {
			return o.Label
		}
	}
	return view.AllStatus
}
