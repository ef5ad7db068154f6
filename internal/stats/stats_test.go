package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/berth-dev/rollcall/internal/transcript"
)

func sampleRecords() []transcript.Record {
	return []transcript.Record{
		{User: "Alice", DieSize: 6, Faces: []int{3, 5}},
		{User: "Cidel", DieSize: 20, Faces: []int{17}},
		{User: "Bob", DieSize: 6, Faces: []int{1}},
		{User: "Cidel", DieSize: 6, Faces: []int{6, 6, 2}},
		{User: "Alice", DieSize: 6, Faces: []int{4}},
		{User: "Bob", DieSize: 8, Faces: []int{8}},
	}
}

func TestAggregate_Table(t *testing.T) {
	table := Aggregate(sampleRecords())

	if diff := cmp.Diff([]int{6, 20, 8}, table.DieSizes()); diff != "" {
		t.Errorf("DieSizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob", "Cidel"}, table.Users(6)); diff != "" {
		t.Errorf("Users(6) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 5, 4}, table.Faces(6, "Alice")); diff != "" {
		t.Errorf("Faces(6, Alice) mismatch (-want +got):\n%s", diff)
	}
	if table.Rolls() != 6 {
		t.Errorf("Rolls() = %d, want 6", table.Rolls())
	}
	if table.Dice() != 9 {
		t.Errorf("Dice() = %d, want 9", table.Dice())
	}
	if diff := cmp.Diff([]string{"Alice", "Bob", "Cidel"}, table.AllUsers()); diff != "" {
		t.Errorf("AllUsers mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_SingleRecord(t *testing.T) {
	table := Aggregate([]transcript.Record{{User: "Alice", DieSize: 6, Faces: []int{3, 5}}})

	if diff := cmp.Diff([]int{3, 5}, table.Faces(6, "Alice")); diff != "" {
		t.Errorf("table[6][Alice] mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	a := Aggregate(sampleRecords())
	b := Aggregate(sampleRecords())

	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Table{})); diff != "" {
		t.Errorf("tables differ (-first +second):\n%s", diff)
	}
}

func TestTable_FacesIsACopy(t *testing.T) {
	table := Aggregate(sampleRecords())
	faces := table.Faces(6, "Alice")
	faces[0] = 99

	if table.Faces(6, "Alice")[0] != 3 {
		t.Error("mutating the returned slice changed the table")
	}
}

func TestTable_Split(t *testing.T) {
	table := Aggregate(sampleRecords())

	ref, others := table.Split(6, "Cidel")
	if diff := cmp.Diff([]int{6, 6, 2}, ref); diff != "" {
		t.Errorf("reference faces mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 5, 4, 1}, others); diff != "" {
		t.Errorf("other faces mismatch (-want +got):\n%s", diff)
	}

	ref, others = table.Split(8, "Cidel")
	if len(ref) != 0 || len(others) != 1 {
		t.Errorf("Split(8) = %v, %v; want [], [8]", ref, others)
	}
}

func TestTable_SuggestUser(t *testing.T) {
	table := Aggregate(sampleRecords())

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Cidel", "", false},
		{"cidel", "Cidel", true},
		{"Cide", "Cidel", true},
		{"zzz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.SuggestUser(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SuggestUser(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewHistogram_Counts(t *testing.T) {
	h := NewHistogram([]int{3, 5, 4, 1, 6, 6, 2}, 6)

	if diff := cmp.Diff([]int{1, 1, 1, 1, 1, 2}, h.Counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}
	if h.Lower != 3 || h.Upper != 4 {
		t.Errorf("Lower, Upper = %d, %d; want 3, 4", h.Lower, h.Upper)
	}
	if got := h.Fraction(6); got != 2.0/7.0 {
		t.Errorf("Fraction(6) = %v, want %v", got, 2.0/7.0)
	}
	if h.Count(0) != 0 || h.Count(7) != 0 {
		t.Error("out-of-range faces should have zero count")
	}
}

func TestNewHistogram_Completeness(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		faces []int
	}{
		{"d4", 4, []int{1, 2, 3, 4, 4, 4}},
		{"d6", 6, []int{6}},
		{"d20", 20, []int{1, 20, 10, 11, 7, 7, 13}},
		{"d2", 2, []int{1, 2, 2}},
		{"d3 odd", 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistogram(tt.faces, tt.size)
			sum := 0
			for face := 1; face <= tt.size; face++ {
				sum += h.Count(face)
			}
			if sum != len(tt.faces) {
				t.Errorf("sum of counts = %d, want %d", sum, len(tt.faces))
			}
			if h.Lower+h.Upper != h.Total {
				t.Errorf("Lower+Upper = %d, want %d", h.Lower+h.Upper, h.Total)
			}
		})
	}
}

func TestNewHistogram_Empty(t *testing.T) {
	h := NewHistogram(nil, 6)

	if !h.Empty() {
		t.Error("Empty() = false, want true")
	}
	if h.LowerFraction() != 0 || h.UpperFraction() != 0 || h.Fraction(1) != 0 {
		t.Error("fractions of an empty histogram should be zero")
	}
	if h.Counts != nil {
		t.Errorf("empty histogram allocated %d buckets", len(h.Counts))
	}
}

func TestNewHistogram_OddDieHalves(t *testing.T) {
	h := NewHistogram([]int{1, 2, 3}, 3)

	if h.Half() != 1 {
		t.Errorf("Half() = %d, want 1", h.Half())
	}
	if h.Lower != 1 || h.Upper != 2 {
		t.Errorf("Lower, Upper = %d, %d; want 1, 2", h.Lower, h.Upper)
	}
}
