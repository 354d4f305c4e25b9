package pivot

import (
	"bytes"
	"encoding/json"
	"sort"
)

// GrandTotalLabel names the synthetic totals row and column.
const GrandTotalLabel = "Grand_Total"

// Table is a cross-tabulation of counts. Columns and Rows keep their
// presentation order; the last column and the last row are the grand totals
// once AddGrandTotals has run.
type Table struct {
	IndexName string
	Columns   []string
	Rows      []Row
}

// Row holds one row label and its cells, parallel to Table.Columns.
type Row struct {
	Label string
	Cells []int
}

type cellKey struct {
	row string
	col string
}

// crossTab counts (row, column) label pairs into a table. Row labels are
// sorted; column order follows colOrder when given, otherwise observed
// columns sorted lexicographically. Columns listed in colOrder appear even
// when no record maps to them.
func crossTab(indexName string, pairs []cellKey, colOrder []string) *Table {
	counts := make(map[cellKey]int, len(pairs))
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})
	for _, p := range pairs {
		counts[p]++
		rowSet[p.row] = struct{}{}
		colSet[p.col] = struct{}{}
	}

	rows := make([]string, 0, len(rowSet))
	for label := range rowSet {
		rows = append(rows, label)
	}
	sort.Strings(rows)

	var cols []string
	if colOrder != nil {
		cols = append(cols, colOrder...)
	} else {
		for label := range colSet {
			cols = append(cols, label)
		}
		sort.Strings(cols)
	}

	t := &Table{IndexName: indexName, Columns: cols}
	for _, label := range rows {
		cells := make([]int, len(cols))
		for i, col := range cols {
			cells[i] = counts[cellKey{row: label, col: col}]
		}
		t.Rows = append(t.Rows, Row{Label: label, Cells: cells})
	}
	return t
}

// AddGrandTotals appends the totals column (row-wise sums) and the totals row
// (column-wise sums). The intersection cell holds the overall record count.
func (t *Table) AddGrandTotals() {
	for i := range t.Rows {
		sum := 0
		for _, v := range t.Rows[i].Cells {
			sum += v
		}
		t.Rows[i].Cells = append(t.Rows[i].Cells, sum)
	}
	t.Columns = append(t.Columns, GrandTotalLabel)

	totals := make([]int, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row.Cells {
			totals[i] += v
		}
	}
	t.Rows = append(t.Rows, Row{Label: GrandTotalLabel, Cells: totals})
}

// Field is one named cell of a serialized report row.
type Field struct {
	Name  string
	Value any
}

// Record is a report row serialized as a flat JSON object whose keys keep
// the table's column order.
type Record struct {
	Fields []Field
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Records flattens the table into an ordered sequence of row records. Every
// record carries the same field set: the index field first, then one field
// per column in table order.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		fields := make([]Field, 0, len(row.Cells)+1)
		fields = append(fields, Field{Name: t.IndexName, Value: row.Label})
		for i, col := range t.Columns {
			fields = append(fields, Field{Name: col, Value: row.Cells[i]})
		}
		records = append(records, Record{Fields: fields})
	}
	return records
}
