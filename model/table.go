package model

import (
	"errors"
	"fmt"
)

// ErrCellUnavailable is returned by TableSource.Cell when a cell carries no
// readable text body.
var ErrCellUnavailable = errors.New("cell unavailable")

// Table is an in-memory TableSource. A nil cell reports ErrCellUnavailable.
type Table struct {
	Rows    [][]*Text
	Columns int
}

// NewTable creates a table with rows x cols empty cells
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:    make([][]*Text, rows),
		Columns: cols,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]*Text, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = NewText()
		}
	}
	return table
}

// NewSparseTable creates a table with rows x cols cells, all unset. Cells
// never filled with SetCell report ErrCellUnavailable.
func NewSparseTable(rows, cols int) *Table {
	table := &Table{
		Rows:    make([][]*Text, rows),
		Columns: cols,
	}
	for i := range table.Rows {
		table.Rows[i] = make([]*Text, cols)
	}
	return table
}

// Size returns the row and column counts
func (t *Table) Size() (rows, cols int, err error) {
	return len(t.Rows), t.Columns, nil
}

// Cell returns the cell at the given row and column (0-indexed)
func (t *Table) Cell(row, col int) (TextSource, error) {
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil, fmt.Errorf("cell (%d,%d): %w", row, col, ErrCellUnavailable)
	}
	cell := t.Rows[row][col]
	if cell == nil {
		return nil, fmt.Errorf("cell (%d,%d): %w", row, col, ErrCellUnavailable)
	}
	return cell, nil
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, text *Text) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = text
	return nil
}
