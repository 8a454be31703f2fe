package aggregate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reportdev/reportd/internal/clean"
)

func TestAggregate_NoOperation(t *testing.T) {
	tests := []struct {
		name  string
		rows  string
		dtype clean.ColumnDataType
		want  any
	}{
		{"numbers", "1,2.5,-3", clean.Number, []float64{1, 2.5, -3}},
		{"strings", "a,b,c", clean.String, []string{"a", "b", "c"}},
		{"bools", "true,false,true", clean.Boolean, []bool{true, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.rows, tt.dtype, OpNone)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aggregate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregate_NumberReductions(t *testing.T) {
	tests := []struct {
		name string
		rows string
		op   Operation
		want any
	}{
		{"first", "3,1,2", OpFirst, 3.0},
		{"last", "3,1,2", OpLast, 2.0},
		{"min", "3,1,2", OpMin, 1.0},
		{"max", "3,1,2", OpMax, 3.0},
		{"sum", "1,2,3", OpSum, 6.0},
		{"mean", "1,2,3,4", OpMean, 2.5},
		{"median even", "1,2,3,4", OpMedian, 2.5},
		{"median odd", "3,1,2", OpMedian, 2.0},
		{"median unsorted input", "9,1,5", OpMedian, 5.0},
		{"mode single", "1,2,2,3", OpMode, []float64{2}},
		{"mode tie keeps all", "1,1,2,2,3", OpMode, []float64{1, 2}},
		{"mode all unique", "3,1,2", OpMode, []float64{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.rows, clean.Number, tt.op)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aggregate(%q, %q) = %v, want %v", tt.rows, tt.op, got, tt.want)
			}
		})
	}
}

func TestAggregate_SelectionOnEveryDtype(t *testing.T) {
	if got, _ := Aggregate("a,b,c", clean.String, OpFirst); got != "a" {
		t.Errorf("first on strings = %v, want a", got)
	}
	if got, _ := Aggregate("a,b,c", clean.String, OpLast); got != "c" {
		t.Errorf("last on strings = %v, want c", got)
	}
	if got, _ := Aggregate("true,false", clean.Boolean, OpLast); got != false {
		t.Errorf("last on bools = %v, want false", got)
	}
}

func TestAggregate_UnsupportedOperations(t *testing.T) {
	tests := []struct {
		dtype clean.ColumnDataType
		rows  string
		op    Operation
	}{
		{clean.String, "1,2,3", OpMean},
		{clean.String, "a,b", OpSum},
		{clean.Boolean, "true,false", OpMedian},
		{clean.Boolean, "true,false", OpMode},
	}
	for _, tt := range tests {
		_, err := Aggregate(tt.rows, tt.dtype, tt.op)
		if !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("Aggregate(%s, %q) error = %v, want ErrUnsupportedOperation", tt.dtype, tt.op, err)
		}
	}
}

func TestAggregate_EmptyColumn(t *testing.T) {
	for _, rows := range []string{"", ",", ",,,"} {
		for _, op := range []Operation{OpNone, OpFirst, OpSum} {
			_, err := Aggregate(rows, clean.Number, op)
			if !errors.Is(err, ErrEmptyColumn) {
				t.Errorf("Aggregate(%q, %q) error = %v, want ErrEmptyColumn", rows, op, err)
			}
		}
	}
}

func TestAggregate_InvalidNumber(t *testing.T) {
	_, err := Aggregate("1,x,3", clean.Number, OpSum)
	if err == nil {
		t.Fatal("unparsable numeric cell should fail")
	}
	if errors.Is(err, ErrUnsupportedOperation) || errors.Is(err, ErrEmptyColumn) {
		t.Errorf("parse failure mapped to wrong error kind: %v", err)
	}
}

func TestAggregate_BoolTruthiness(t *testing.T) {
	// Anything except an explicit "false" or an empty cell reads true,
	// matching what the classifier writes.
	got, err := Aggregate("true,false,yes", clean.Boolean, OpNone)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	want := []bool{true, false, true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bools = %v, want %v", got, want)
	}
}

func TestParseOperation(t *testing.T) {
	for _, valid := range []string{"", "first", "last", "max", "mean", "median", "min", "mode", "sum"} {
		if _, err := ParseOperation(valid); err != nil {
			t.Errorf("ParseOperation(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseOperation("variance"); err == nil {
		t.Error("ParseOperation should reject unknown names")
	}
}

func TestAggregate_RoundTrip(t *testing.T) {
	// A column serialized by the cleaner parses back to the same logical
	// values under its own dtype.
	rows := "10,20.5,5"
	got, err := Aggregate(rows, clean.Number, OpNone)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if !reflect.DeepEqual(got, []float64{10, 20.5, 5}) {
		t.Errorf("round-trip = %v", got)
	}
}
