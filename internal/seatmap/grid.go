package seatmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Every auditorium uses the same fixed layout: rows A..J, seats 1..10.
const (
	Rows        = 10
	SeatsPerRow = 10
	Capacity    = Rows * SeatsPerRow

	firstRow = 'A'
)

// SeatLabel is a grid coordinate like "A1" or "J10".
type SeatLabel = string

// Valid reports whether label names a cell of the grid.
func Valid(label SeatLabel) bool {
	_, _, err := Parse(label)
	return err == nil
}

// Parse splits a label into row letter and seat number.
func Parse(label SeatLabel) (row rune, number int, err error) {
	if len(label) < 2 {
		return 0, 0, fmt.Errorf("seat label %q is too short", label)
	}

	row = rune(label[0])
	if row < firstRow || row >= firstRow+Rows {
		return 0, 0, fmt.Errorf("seat label %q has unknown row", label)
	}

	for _, c := range label[1:] {
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("seat label %q has invalid number", label)
		}
	}
	number, convErr := strconv.Atoi(label[1:])
	if convErr != nil {
		return 0, 0, fmt.Errorf("seat label %q has invalid number", label)
	}
	if number < 1 || number > SeatsPerRow {
		return 0, 0, fmt.Errorf("seat label %q is out of range", label)
	}

	return row, number, nil
}

// Normalize validates a label and returns its canonical spelling, rebuilt
// from the parsed row and number so "a1" and "A01" both become "A1". Every
// stored or compared label must go through here; the unique seat index only
// protects canonical spellings.
func Normalize(label SeatLabel) (SeatLabel, error) {
	row, number, err := Parse(strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%c%d", row, number), nil
}

// SortLabels orders labels row-major: A1..A10, B1, ...
func SortLabels(labels []SeatLabel) {
	sort.Slice(labels, func(i, j int) bool {
		ri, ni, _ := Parse(labels[i])
		rj, nj, _ := Parse(labels[j])
		if ri != rj {
			return ri < rj
		}
		return ni < nj
	})
}

// RowLabels returns the row letters of the grid in order.
func RowLabels() []string {
	rows := make([]string, 0, Rows)
	for r := 0; r < Rows; r++ {
		rows = append(rows, string(rune(firstRow+r)))
	}
	return rows
}
