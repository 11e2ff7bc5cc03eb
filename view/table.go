package view

import (
	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
)

const (
	StatusColumn  = "Status"
	ActionsColumn = "Actions"
)

type Row struct {
	ID     string
	Index  int
	Cells  []string
	Status string
	Badge  Badge
}

// StatusText is what the status column shows for the row.
func (r Row) StatusText() string {
	return StatusText(r.Status)
}

type Table struct {
	Columns []string
	Rows    []Row
}

// Columns returns the header of the rendered table for s.
func Columns(s *schema.Schema) []string {
	primary := s.Primary()
	cols := make([]string, 0, len(primary)+2)
	for _, f := range primary {
		cols = append(cols, f.Label)
	}
	return append(cols, StatusColumn, ActionsColumn)
}

// Render filters recs by q and projects every visible record onto the
// primary columns of s. Row.Index is the record's position in recs.
func Render(s *schema.Schema, recs []*record.Record, q Query) Table {
	t := Table{Columns: Columns(s), Rows: make([]Row, 0, len(recs))}
	primary := s.Primary()

	for i, r := range recs {
		if !q.Matches(s.StatusKey(), r) {
			continue
		}

		cells := make([]string, len(primary))
		for j, f := range primary {
			cells[j] = r.Display(f.Key)
		}

		status := r.Display(s.StatusKey())
		t.Rows = append(t.Rows, Row{
			ID:     r.ID(),
			Index:  i,
			Cells:  cells,
			Status: status,
			Badge:  Classify(status),
		})
	}

	return t
}
