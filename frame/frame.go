// Package frame provides a small labelled 2-D table of float64 values, the
// exchange format between the computation packages and the report writers.
//
// Rows and columns are addressed either by position or by label. Label order
// is the declaration order and is preserved by every operation, which keeps
// written outputs byte-for-byte reproducible.
package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

var (
	// ErrShape indicates data that does not match the label counts.
	ErrShape = errors.New("frame: data shape does not match labels")

	// ErrDuplicateLabel indicates a repeated row or column label.
	ErrDuplicateLabel = errors.New("frame: duplicate label")

	// ErrUnknownLabel indicates a lookup of a label that does not exist.
	ErrUnknownLabel = errors.New("frame: unknown label")
)

// Frame is a labelled rows×cols table.
type Frame struct {
	Name      string
	RowLabels []string
	ColLabels []string
	Data      [][]float64

	rowIdx map[string]int
	colIdx map[string]int
}

// New allocates a zero-filled frame with the given labels.
func New(name string, rows, cols []string) (*Frame, error) {
	data := make([][]float64, len(rows))
	for i := range data {
		data[i] = make([]float64, len(cols))
	}
	return FromData(name, rows, cols, data)
}

// FromData wraps existing data; the slices are copied.
func FromData(name string, rows, cols []string, data [][]float64) (*Frame, error) {
	if len(data) != len(rows) {
		return nil, fmt.Errorf("frame %q: %d rows for %d labels: %w", name, len(data), len(rows), ErrShape)
	}
	f := &Frame{
		Name:      name,
		RowLabels: append([]string(nil), rows...),
		ColLabels: append([]string(nil), cols...),
		Data:      make([][]float64, len(rows)),
	}
	for i, row := range data {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("frame %q: row %q has %d values for %d labels: %w", name, rows[i], len(row), len(cols), ErrShape)
		}
		f.Data[i] = append([]float64(nil), row...)
	}
	var err error
	if f.rowIdx, err = index(rows); err != nil {
		return nil, fmt.Errorf("frame %q rows: %w", name, err)
	}
	if f.colIdx, err = index(cols); err != nil {
		return nil, fmt.Errorf("frame %q cols: %w", name, err)
	}

	return f, nil
}

func index(labels []string) (map[string]int, error) {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, fmt.Errorf("%q: %w", l, ErrDuplicateLabel)
		}
		idx[l] = i
	}
	return idx, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return len(f.RowLabels) }

// Cols returns the number of columns.
func (f *Frame) Cols() int { return len(f.ColLabels) }

// RowIndex returns the position of a row label.
func (f *Frame) RowIndex(label string) (int, error) {
	i, ok := f.rowIdx[label]
	if !ok {
		return 0, fmt.Errorf("frame %q row %q: %w", f.Name, label, ErrUnknownLabel)
	}
	return i, nil
}

// ColIndex returns the position of a column label.
func (f *Frame) ColIndex(label string) (int, error) {
	j, ok := f.colIdx[label]
	if !ok {
		return 0, fmt.Errorf("frame %q column %q: %w", f.Name, label, ErrUnknownLabel)
	}
	return j, nil
}

// Get returns the value at (row label, column label).
func (f *Frame) Get(row, col string) (float64, error) {
	i, err := f.RowIndex(row)
	if err != nil {
		return 0, err
	}
	j, err := f.ColIndex(col)
	if err != nil {
		return 0, err
	}
	return f.Data[i][j], nil
}

// Set stores v at (row label, column label).
func (f *Frame) Set(row, col string, v float64) error {
	i, err := f.RowIndex(row)
	if err != nil {
		return err
	}
	j, err := f.ColIndex(col)
	if err != nil {
		return err
	}
	f.Data[i][j] = v
	return nil
}

// Column returns a copy of column j in row order.
func (f *Frame) Column(j int) []float64 {
	out := make([]float64, len(f.Data))
	for i, row := range f.Data {
		out[i] = row[j]
	}
	return out
}

// SetColumn overwrites column j; len(values) must equal Rows().
func (f *Frame) SetColumn(j int, values []float64) error {
	if len(values) != len(f.Data) {
		return fmt.Errorf("frame %q column %d: %w", f.Name, j, ErrShape)
	}
	for i := range f.Data {
		f.Data[i][j] = values[i]
	}
	return nil
}

// String renders the frame as an aligned text table.
func (f *Frame) String() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(f.ColLabels, "\t"))
	for i, label := range f.RowLabels {
		cells := make([]string, len(f.Data[i]))
		for j, v := range f.Data[i] {
			cells[j] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", label, strings.Join(cells, "\t"))
	}
	tw.Flush()

	return sb.String()
}
