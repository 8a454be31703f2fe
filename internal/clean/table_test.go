package clean

import (
	"errors"
	"testing"
)

func TestParseTable(t *testing.T) {
	text := "Name ,Age,Active\nalice,30,true\nbob,,false\n"
	table, err := parseTable(text)
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}

	if len(table.columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(table.columns))
	}
	if table.rows != 2 {
		t.Errorf("rows = %d, want 2", table.rows)
	}
	if table.columns[0].name != "Name" {
		t.Errorf("header not trimmed: %q", table.columns[0].name)
	}

	wantKinds := []cellKind{kindText, kindNumber, kindBool}
	for i, want := range wantKinds {
		if got := table.columns[i].kind; got != want {
			t.Errorf("column %d kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseTable_Ragged(t *testing.T) {
	_, err := parseTable("a,b\n1,2,3\n")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestParseTable_Empty(t *testing.T) {
	_, err := parseTable("")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestParseTable_HeaderOnly(t *testing.T) {
	table, err := parseTable("a,b\n")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if table.rows != 0 {
		t.Errorf("rows = %d, want 0", table.rows)
	}
	for _, col := range table.columns {
		if col.kind != kindText {
			t.Errorf("empty column kind = %v, want text", col.kind)
		}
	}
}

func TestParseTable_BOM(t *testing.T) {
	table, err := parseTable("\ufeffa,b\n1,2\n")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if table.columns[0].name != "a" {
		t.Errorf("BOM not stripped from first header: %q", table.columns[0].name)
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  cellKind
	}{
		{"integers", []string{"1", "2", "3"}, kindNumber},
		{"decimals", []string{"1.5", "-2", "3e2"}, kindNumber},
		{"numbers with nulls", []string{"1", "", "3"}, kindNumber},
		{"bools", []string{"true", "false", "True"}, kindBool},
		{"mixed", []string{"1", "x"}, kindText},
		{"all null", []string{"", ""}, kindText},
		{"none", nil, kindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferKind(tt.cells); got != tt.want {
				t.Errorf("inferKind(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{20.5, "20.5"},
		{-0.25, "-0.25"},
		{2.5, "2.5"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
