// Package view turns a dataset into the rows a user sees: filtered by a
// search string and a status, reduced to the primary columns and badged.
package view

import (
	"strings"

	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
)

// AllStatus is the label of the option that disables status filtering.
const AllStatus = "All Status"

// Query is the search and filter state of one dataset view.
type Query struct {
	Search string
	Status string
}

func (q Query) Empty() bool {
	return q.Search == "" && q.Status == ""
}

// Matches reports whether r is visible under q for a dataset whose
// status lives under statusKey.
func (q Query) Matches(statusKey string, r *record.Record) bool {
	if q.Search != "" && !strings.Contains(r.Text(), strings.ToLower(q.Search)) {
		return false
	}

	if q.Status != "" && strings.ToLower(r.Display(statusKey)) != strings.ToLower(q.Status) {
		return false
	}

	return true
}

// Reconcile drops a selected status that is no longer among opts.
func (q Query) Reconcile(opts []Option) Query {
	if q.Status == "" {
		return q
	}

	for _, o := range opts {
		if o.Value == q.Status {
			return q
		}
	}

	q.Status = ""
	return q
}

// Filter keeps the records of s matching q, in their original order.
func Filter(s *schema.Schema, recs []*record.Record, q Query) []*record.Record {
	out := make([]*record.Record, 0, len(recs))
	for _, r := range recs {
		if q.Matches(s.StatusKey(), r) {
			out = append(out, r)
		}
	}
	return out
}

type Option struct {
	Value string
	Label string
}

// StatusOptions lists the "All Status" option followed by every distinct
// non-empty status in the order it first appears.
func StatusOptions(s *schema.Schema, recs []*record.Record) []Option {
	opts := []Option{{Value: "", Label: AllStatus}}
	seen := make(map[string]struct{})

	for _, r := range recs {
		st := r.Display(s.StatusKey())
		if st == "" {
			continue
		}
		if _, ok := seen[st]; ok {
			continue
		}
		seen[st] = struct{}{}
		opts = append(opts, Option{Value: st, Label: st})
	}

	return opts
}
