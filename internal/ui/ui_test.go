package ui

import (
	"strings"
	"testing"
)

func TestSplitBar_Fill(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		full     int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 5},
		{"full", 1, 10},
		{"clamped high", 1.7, 10},
		{"clamped low", -0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := SplitBar(tt.fraction, 10)
			if got := strings.Count(bar, "█"); got != tt.full {
				t.Errorf("full cells = %d, want %d (bar %q)", got, tt.full, bar)
			}
		})
	}
}

func TestSplitBar_DefaultWidth(t *testing.T) {
	bar := SplitBar(1, 0)
	if got := strings.Count(bar, "█"); got != DefaultBarWidth {
		t.Errorf("full cells = %d, want %d", got, DefaultBarWidth)
	}
}
