package dist

import (
	"math"
	"testing"
)

func TestExponential_MeanMatchesParam(t *testing.T) {
	d, err := NewExponential(0.6, 42)
	if err != nil {
		t.Fatal(err)
	}
	n := 10000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample()
	}
	mean := sum / float64(n)
	if math.Abs(mean-0.6)/0.6 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 0.6 (within 5%%)", mean)
	}
}

func TestExponential_RejectsNonPositiveMean(t *testing.T) {
	for _, mean := range []float64{0, -1} {
		if _, err := NewExponential(mean, 1); err == nil {
			t.Errorf("NewExponential(%v) should fail", mean)
		}
	}
}

func TestTriangular_SamplesWithinBounds(t *testing.T) {
	d, err := NewTriangular(5, 7, 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10000; i++ {
		v := d.Sample()
		if v < 5 || v > 10 {
			t.Fatalf("sample %d: %.3f outside [5, 10]", i, v)
		}
	}
}

func TestTriangular_MeanMatchesTheory(t *testing.T) {
	d, err := NewTriangular(5, 7, 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample()
	}
	mean := sum / float64(n)
	want := (5.0 + 7.0 + 10.0) / 3.0
	if math.Abs(mean-want)/want > 0.02 {
		t.Errorf("triangular mean = %.3f, want ≈ %.3f (within 2%%)", mean, want)
	}
}

func TestTriangular_RejectsInvalidOrdering(t *testing.T) {
	cases := [][3]float64{
		{7, 5, 10}, // low > mode
		{5, 11, 10}, // mode > high
	}
	for _, c := range cases {
		if _, err := NewTriangular(c[0], c[1], c[2], 1); err == nil {
			t.Errorf("NewTriangular(%v, %v, %v) should fail", c[0], c[1], c[2])
		}
	}
}

func TestUniform_SamplesWithinBounds(t *testing.T) {
	d, err := NewUniform(10, 20, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10000; i++ {
		v := d.Sample()
		if v < 10 || v >= 20 {
			t.Fatalf("sample %d: %.3f outside [10, 20)", i, v)
		}
	}
}

func TestBernoulli_ProportionMatchesP(t *testing.T) {
	d, err := NewBernoulli(0.4, 42)
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	ones := 0
	for i := 0; i < n; i++ {
		v := d.Sample()
		if v != 0 && v != 1 {
			t.Fatalf("bernoulli sample must be 0 or 1, got %v", v)
		}
		if v == 1 {
			ones++
		}
	}
	p := float64(ones) / float64(n)
	if math.Abs(p-0.4) > 0.02 {
		t.Errorf("bernoulli proportion = %.3f, want ≈ 0.4", p)
	}
}

func TestBernoulli_RejectsOutOfRangeP(t *testing.T) {
	for _, p := range []float64{-0.1, 1.1} {
		if _, err := NewBernoulli(p, 1); err == nil {
			t.Errorf("NewBernoulli(%v) should fail", p)
		}
	}
}

func TestLognormal_MomentsMatchParams(t *testing.T) {
	d, err := NewLognormal(10, 2, 42)
	if err != nil {
		t.Fatal(err)
	}
	n := 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample()
	}
	mean := sum / float64(n)
	if math.Abs(mean-10)/10 > 0.02 {
		t.Errorf("lognormal mean = %.3f, want ≈ 10 (within 2%%)", mean)
	}
}

func TestDiscrete_RespectsFrequencies(t *testing.T) {
	d, err := NewDiscrete([]float64{1, 2, 3}, []float64{1, 1, 2}, 42)
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	counts := map[float64]int{}
	for i := 0; i < n; i++ {
		counts[d.Sample()]++
	}
	p3 := float64(counts[3]) / float64(n)
	if math.Abs(p3-0.5) > 0.02 {
		t.Errorf("P(3) = %.3f, want ≈ 0.5", p3)
	}
}

func TestDiscrete_RejectsMismatchedLengths(t *testing.T) {
	if _, err := NewDiscrete([]float64{1, 2}, []float64{1}, 1); err == nil {
		t.Error("mismatched lengths should fail")
	}
	if _, err := NewDiscrete(nil, nil, 1); err == nil {
		t.Error("empty inputs should fail")
	}
}

func TestFixed_AlwaysSameValue(t *testing.T) {
	d := NewFixed(7.5)
	for i := 0; i < 100; i++ {
		if v := d.Sample(); v != 7.5 {
			t.Fatalf("fixed sample = %v, want 7.5", v)
		}
	}
}

func TestDistributions_DeterministicGivenSeed(t *testing.T) {
	a, _ := NewTriangular(5, 7, 10, 99)
	b, _ := NewTriangular(5, 7, 10, 99)
	for i := 0; i < 1000; i++ {
		if va, vb := a.Sample(), b.Sample(); va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}
