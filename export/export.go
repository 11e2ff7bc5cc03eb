// Package export writes a dataset out as a JSON document or a single sheet
// spreadsheet.
package export

import (
	"io"

	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"

	jsonIndent   = "  "
	defaultSheet = "Sheet1"
)

var ErrUnknownFormat = errors.New("unknown export format")

// FileName is the name an export of d in format gets, e.g. land_export.xlsx.
func FileName(d schema.Dataset, format string) string {
	return d.String() + "_export." + format
}

// JSON writes recs as an indented array keeping every record's key order.
func JSON(w io.Writer, recs []*record.Record) error {
	b, err := record.EncodeIndent(recs, jsonIndent)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "could not write json export")
	}
	return nil
}

// Columns is the union of the keys of recs in the order they first appear.
func Columns(recs []*record.Record) []string {
	var cols []string
	seen := make(map[string]struct{})

	for _, r := range recs {
		for _, k := range r.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}

	return cols
}

// XLSX writes a workbook with one sheet named after d: a header row of
// Columns(recs) and one row per record. No records gives an empty sheet.
func XLSX(w io.Writer, d schema.Dataset, recs []*record.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "could not close workbook")
		}
	}()

	sheet := d.SheetName()
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return errors.Wrapf(err, "could not name sheet %s", sheet)
	}

	cols := Columns(recs)
	if len(cols) > 0 {
		if err := setRow(f, sheet, 1, cols); err != nil {
			return err
		}
	}

	for i, r := range recs {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = r.Get(c)
		}

		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "could not write xlsx export")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return errors.Wrapf(err, "could not address row %d", n)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "could not fill row %d of %s", n, sheet)
	}
	return nil
}
