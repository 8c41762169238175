package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Physics Seminar  ", "Physics Seminar"},
		{"collapse internal runs", "Physics    Seminar", "Physics Seminar"},
		{"tabs and newlines", "Physics\t\nSeminar", "Physics Seminar"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Café & Lab™ ", "Café & Lab™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpecialization(t *testing.T) {
	if got := NormalizeSpecialization("  Quantum   Physics "); got != "quantum physics" {
		t.Errorf("NormalizeSpecialization = %q, want %q", got, "quantum physics")
	}
}

func TestNormalizeIDs(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"dedupe preserving order", []string{"R1", "R2", "R1"}, []string{"R1", "R2"}},
		{"drop empties", []string{"R1", "", "  ", "R2"}, []string{"R1", "R2"}},
		{"trim entries", []string{" R1 ", "R2"}, []string{"R1", "R2"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIDs(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeIDs(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
