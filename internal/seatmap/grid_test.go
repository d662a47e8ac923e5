package seatmap

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("accepts corner seats", func(t *testing.T) {
		for _, label := range []string{"A1", "A10", "J1", "J10"} {
			row, number, err := Parse(label)
			if err != nil {
				t.Fatalf("expected %q to parse, got %v", label, err)
			}
			if row < 'A' || row > 'J' {
				t.Fatalf("unexpected row %q for %q", row, label)
			}
			if number < 1 || number > SeatsPerRow {
				t.Fatalf("unexpected number %d for %q", number, label)
			}
		}
	})

	t.Run("rejects out of range labels", func(t *testing.T) {
		for _, label := range []string{"", "A", "K1", "A0", "A11", "1A", "AA", "A1x", "A+1", "A-1"} {
			if _, _, err := Parse(label); err == nil {
				t.Fatalf("expected %q to be rejected", label)
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("uppercases and trims", func(t *testing.T) {
		for input, want := range map[string]string{
			"a1":    "A1",
			" b10 ": "B10",
			"J5":    "J5",
		} {
			got, err := Normalize(input)
			if err != nil {
				t.Fatalf("expected %q to normalize, got %v", input, err)
			}
			if got != want {
				t.Fatalf("expected %q, got %q", want, got)
			}
		}
	})

	t.Run("canonicalizes padded spellings", func(t *testing.T) {
		for input, want := range map[string]string{
			"A01":  "A1",
			"a01":  "A1",
			"B010": "B10",
		} {
			got, err := Normalize(input)
			if err != nil {
				t.Fatalf("expected %q to normalize, got %v", input, err)
			}
			if got != want {
				t.Fatalf("expected %q for %q, got %q", want, input, got)
			}
		}
	})

	t.Run("rejects invalid labels", func(t *testing.T) {
		for _, label := range []string{"z9", "A+1"} {
			if _, err := Normalize(label); err == nil {
				t.Fatalf("expected %q to be rejected", label)
			}
		}
	})
}

func TestSortLabels(t *testing.T) {
	t.Parallel()

	labels := []string{"B2", "A10", "A2", "J1", "A1"}
	SortLabels(labels)

	want := []string{"A1", "A2", "A10", "B2", "J1"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
}

func TestRowLabels(t *testing.T) {
	t.Parallel()

	rows := RowLabels()
	if len(rows) != Rows {
		t.Fatalf("expected %d rows, got %d", Rows, len(rows))
	}
	if rows[0] != "A" || rows[len(rows)-1] != "J" {
		t.Fatalf("expected rows A..J, got %v", rows)
	}
}

func TestCapacity(t *testing.T) {
	t.Parallel()

	if Capacity != Rows*SeatsPerRow {
		t.Fatalf("capacity %d does not match %dx%d grid", Capacity, Rows, SeatsPerRow)
	}
}
