package stats

// Histogram counts how often each face of an n-sided die came up.
type Histogram struct {
	DieSize int
	Total   int   // number of faces, including out-of-range ones
	Counts  []int // Counts[i] is the count of face i+1
	Lower   int   // faces <= DieSize/2
	Upper   int   // Total - Lower
}

// NewHistogram counts faces for a die of dieSize sides. Faces outside
// 1..dieSize still count towards Total and the halves but get no bucket.
// An empty histogram allocates no buckets.
func NewHistogram(faces []int, dieSize int) Histogram {
	h := Histogram{
		DieSize: dieSize,
		Total:   len(faces),
	}
	if h.Total == 0 {
		return h
	}
	h.Counts = make([]int, max(dieSize, 0))

	half := h.Half()
	for _, f := range faces {
		if f >= 1 && f <= dieSize {
			h.Counts[f-1]++
		}
		if f <= half {
			h.Lower++
		}
	}
	h.Upper = h.Total - h.Lower

	return h
}

// Empty reports whether no faces were counted.
func (h Histogram) Empty() bool {
	return h.Total == 0
}

// Half is the last face of the lower half.
func (h Histogram) Half() int {
	return h.DieSize / 2
}

// Count returns how often face came up.
func (h Histogram) Count(face int) int {
	if face < 1 || face > len(h.Counts) {
		return 0
	}
	return h.Counts[face-1]
}

// Fraction returns face's share of Total, or 0 for an empty histogram.
func (h Histogram) Fraction(face int) float64 {
	return h.ratio(h.Count(face))
}

// LowerFraction returns the share of faces in 1..Half.
func (h Histogram) LowerFraction() float64 {
	return h.ratio(h.Lower)
}

// UpperFraction returns the share of faces in Half+1..DieSize.
func (h Histogram) UpperFraction() float64 {
	return h.ratio(h.Upper)
}

func (h Histogram) ratio(n int) float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(n) / float64(h.Total)
}
