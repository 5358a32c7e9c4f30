// Package dataset loads tabular input and selects the columns that
// feed a treemap: an area weight, optional labels and fill values, and
// the hierarchy level columns.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Table is a columnar table loaded from CSV. The first record is the
// header; short rows are padded with empty strings on access.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV parses a CSV stream with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv input has no header row")
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// ReadCSVFile loads a CSV file from disk.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %q", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %q", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) columnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidColumn,
		"column %q not included in data", name)
}

func (t *Table) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Select names the columns used to build treemap items. Exactly one
// of Area, AreaValues, or AreaConst must provide the weights.
type Select struct {
	Area       string    // numeric column holding the weights
	AreaValues []float64 // explicit per-row weights
	AreaConst  float64   // constant weight for every row
	Labels     string    // optional label column for leaf tiles
	Fill       string    // optional fill value column
	Levels     []string  // hierarchy columns, root first
}

// Items builds one treemap item per row using the selection. Missing
// cells become empty strings; non-numeric area cells are validation
// errors.
func (t *Table) Items(sel Select) ([]treemap.Item, error) {
	if sel.Area == "" && len(sel.AreaValues) == 0 && sel.AreaConst == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArea,
			"area must be specified as a column name, explicit values, or a constant")
	}
	if len(sel.AreaValues) > 0 && len(sel.AreaValues) != t.Len() {
		return nil, errors.New(errors.ErrCodeInvalidArea,
			"area has %d values but data has %d rows", len(sel.AreaValues), t.Len())
	}

	areaIdx := -1
	if sel.Area != "" {
		idx, err := t.columnIndex(sel.Area)
		if err != nil {
			return nil, err
		}
		areaIdx = idx
	}

	labelIdx, fillIdx := -1, -1
	if sel.Labels != "" {
		idx, err := t.columnIndex(sel.Labels)
		if err != nil {
			return nil, err
		}
		labelIdx = idx
	}
	if sel.Fill != "" {
		idx, err := t.columnIndex(sel.Fill)
		if err != nil {
			return nil, err
		}
		fillIdx = idx
	}

	levelIdx := make([]int, len(sel.Levels))
	for i, name := range sel.Levels {
		idx, err := t.columnIndex(name)
		if err != nil {
			return nil, err
		}
		levelIdx[i] = idx
	}

	items := make([]treemap.Item, 0, t.Len())
	for ri, row := range t.Rows {
		area := sel.AreaConst
		switch {
		case len(sel.AreaValues) > 0:
			area = sel.AreaValues[ri]
		case areaIdx >= 0:
			v, err := strconv.ParseFloat(t.cell(row, areaIdx), 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidArea,
					"area value %q in row %d is not a number", t.cell(row, areaIdx), ri)
			}
			area = v
		}

		it := treemap.Item{Area: area}
		if labelIdx >= 0 {
			it.Label = t.cell(row, labelIdx)
		}
		if fillIdx >= 0 {
			it.Fill = t.cell(row, fillIdx)
		}
		for _, idx := range levelIdx {
			it.Levels = append(it.Levels, t.cell(row, idx))
		}
		items = append(items, it)
	}
	return items, nil
}
