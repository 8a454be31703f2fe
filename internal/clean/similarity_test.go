package clean

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"apple", "apple", 1.0},
		{"", "", 1.0},
		{"abc", "xyz", 0.0},
		{"aple", "apple", 8.0 / 9.0}, // "ple" + "a" match, T=9
		{"abcd", "bcda", 6.0 / 8.0},  // "bcd" block
		{"a", "", 0.0},
	}
	for _, tt := range tests {
		got := similarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{{"apple", "aple"}, {"banana", "bandana"}, {"short", "longerstring"}}
	for _, p := range pairs {
		ab, ba := similarity(p[0], p[1]), similarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("similarity(%q, %q)=%v != similarity(%q, %q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestCorrect(t *testing.T) {
	column := []string{"apple", "aple", "apple", "banana"}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"near mode snaps to mode", "aple", "apple"},
		{"mode stays itself", "apple", "apple"},
		{"distinct value unchanged", "banana", "banana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := correct(tt.value, column); got != tt.want {
				t.Errorf("correct(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCorrect_SimilarClusterWins(t *testing.T) {
	// "gren" is not close enough to the mode "blue" but is close to the
	// "green" cluster, so it snaps to the most frequent similar value.
	column := []string{"blue", "blue", "blue", "green", "green", "gren"}
	if got := correct("gren", column); got != "green" {
		t.Errorf("correct(%q) = %q, want %q", "gren", got, "green")
	}
}

func TestCorrect_EmptyColumn(t *testing.T) {
	if got := correct("x", nil); got != "x" {
		t.Errorf("correct on empty column = %q, want unchanged", got)
	}
}

func TestModeOf(t *testing.T) {
	if _, ok := modeOf(nil); ok {
		t.Error("modeOf(nil) should report no mode")
	}
	got, ok := modeOf([]string{"b", "a", "b", "a"})
	if !ok || got != "b" {
		t.Errorf("modeOf tie = %q, want first-seen %q", got, "b")
	}
}

func BenchmarkCorrectAll(b *testing.B) {
	values := make([]string, 200)
	words := []string{"widget", "widgit", "gadget", "gizmo", "wídget"}
	for i := range values {
		values[i] = words[i%len(words)]
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			correct(v, values)
		}
	}
}
